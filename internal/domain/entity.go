package domain

// Известные ключи в Properties. Ядро не навязывает схему свойств,
// но ключи, которые читает само ядро (AI, бой), зафиксированы здесь,
// чтобы не расползались строковые литералы.
const (
	PropType            = "type"                   // строка: "player", "npc", "monster"...
	PropHP              = "hp"                     // int: текущее здоровье (для резолвера боя)
	PropWaypoints       = "waypoints"              // []Position: маршрут патруля
	PropWaypointIndex   = "current_waypoint_index" // int: текущая точка маршрута
	PropDetectionRange  = "detection_range"        // int: радиус обнаружения (манхэттен)
	PropHostileTo       = "hostile_to"             // []string: типы, к которым враждебен
	PropBehavior        = "behavior"               // строка: имя behavior-функции из реестра
)

// Entity - базовая игровая сущность: персонаж, монстр, предмет.
// ID назначается вызывающей стороной и обязан быть уникальным в рамках
// одного WorldState. Properties - открытый мешок игровых атрибутов;
// ядру не нужно знать их полный состав.
type Entity struct {
	ID         string         `json:"id" yaml:"id"`
	Pos        Position       `json:"position" yaml:"position"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// NewEntity создает сущность с пустым (но не nil) набором свойств.
func NewEntity(id string, pos Position) *Entity {
	return &Entity{
		ID:         id,
		Pos:        pos,
		Properties: make(map[string]any),
	}
}

// IntProp читает целочисленное свойство. После загрузки из YAML/JSON числа
// приходят как int/int64/float64 в зависимости от декодера, поэтому
// приводим все три варианта.
func (e *Entity) IntProp(key string, def int) int {
	v, ok := e.Properties[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// StringProp читает строковое свойство.
func (e *Entity) StringProp(key string, def string) string {
	if s, ok := e.Properties[key].(string); ok {
		return s
	}
	return def
}

// StringListProp читает список строк. Обрабатываем и []string (выставлено
// кодом), и []any (пришло из десериализации).
func (e *Entity) StringListProp(key string) []string {
	switch v := e.Properties[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Waypoints читает маршрут патруля. Как и со списками строк, после загрузки
// сохранения точки приходят как []any c map внутри - восстанавливаем их.
func (e *Entity) Waypoints() []Position {
	switch v := e.Properties[PropWaypoints].(type) {
	case []Position:
		return v
	case []any:
		out := make([]Position, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			p := Position{}
			if x, ok := toInt(m["x"]); ok {
				p.X = x
			}
			if y, ok := toInt(m["y"]); ok {
				p.Y = y
			}
			if loc, ok := m["location_id"].(string); ok {
				p.LocationID = loc
			}
			out = append(out, p)
		}
		return out
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
