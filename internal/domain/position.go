package domain

// Position описывает позицию сущности: клетка на сетке внутри локации.
// Локации не связаны общей системой координат, поэтому любые вычисления
// дистанции имеют смысл только при совпадающем LocationID.
type Position struct {
	X          int    `json:"x" yaml:"x"`
	Y          int    `json:"y" yaml:"y"`
	LocationID string `json:"location_id" yaml:"location_id"`
}

// Equals возвращает true при полном совпадении (включая локацию).
func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y && p.LocationID == other.LocationID
}

// StepToward возвращает смещение (-1, 0 или +1 по каждой оси) на один шаг
// в сторону цели. Это и есть единое правило движения: один дискретный шаг
// за действие, по диагонали если нужно, а не телепорт к цели.
func (p Position) StepToward(target Position) (dx, dy int) {
	return sign(target.X - p.X), sign(target.Y - p.Y)
}

// ManhattanTo возвращает манхэттенское расстояние до другой точки.
// Используется AI для поиска ближайшей цели (корни тут не нужны).
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
