package systems

import (
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// IdleBehavior - NPC ничего не делает.
func IdleBehavior(npc *domain.Entity, world *domain.WorldState) domain.Action {
	return domain.Idle()
}

// PatrolBehavior - NPC ходит по маршруту из свойства "waypoints".
// Дойдя до текущей точки (совпали x, y И локация), NPC сдвигает индекс
// на (index+1) mod len ДО вычисления цели: прибытие и перенацеливание
// происходят в одном вызове, а не на следующем тике.
func PatrolBehavior(npc *domain.Entity, world *domain.WorldState) domain.Action {
	waypoints := npc.Waypoints()
	if len(waypoints) == 0 {
		return domain.Idle()
	}

	index := npc.IntProp(domain.PropWaypointIndex, 0)
	if index < 0 || index >= len(waypoints) {
		index = 0
	}
	target := waypoints[index]

	if npc.Pos.Equals(target) {
		index = (index + 1) % len(waypoints)
		npc.Properties[domain.PropWaypointIndex] = index
		target = waypoints[index]
		logger.Log.WithFields(map[string]any{
			"entity_id": npc.ID,
			"waypoint":  index,
		}).Debug("Patrol waypoint reached, retargeting")
	}

	action := domain.MoveToward(target)
	action.Data = map[string]any{"waypoint_index": index}
	return action
}

// AttackOnSightBehavior - NPC атакует ближайшую враждебную цель в радиусе
// обнаружения (свойства "detection_range", по умолчанию 5, и "hostile_to",
// по умолчанию ["player"]). Дистанция манхэттенская, сравнение только
// внутри своей локации.
//
// Кандидаты перебираются по возрастанию ID: при равной дистанции
// побеждает лексикографически меньший. Поведение AI обязано быть
// воспроизводимым от запуска к запуску.
func AttackOnSightBehavior(npc *domain.Entity, world *domain.WorldState) domain.Action {
	detectionRange := npc.IntProp(domain.PropDetectionRange, 5)
	hostileTo := npc.StringListProp(domain.PropHostileTo)
	if hostileTo == nil {
		hostileTo = []string{"player"}
	}

	ids := world.AllEntityIDs()

	var closest *domain.Entity
	closestDistance := 0

	for _, id := range ids {
		if id == npc.ID {
			continue // себя не атакуем
		}
		entity := world.GetEntity(id)
		if entity == nil {
			continue
		}
		if entity.Pos.LocationID != npc.Pos.LocationID {
			continue
		}
		if !contains(hostileTo, entity.StringProp(domain.PropType, "")) {
			continue
		}

		distance := npc.Pos.ManhattanTo(entity.Pos)
		if distance > detectionRange {
			continue
		}
		// Строгое "меньше": первый (наименьший ID) из равных побеждает
		if closest == nil || distance < closestDistance {
			closest = entity
			closestDistance = distance
		}
	}

	if closest == nil {
		return domain.Idle()
	}

	logger.Log.WithFields(map[string]any{
		"entity_id": npc.ID,
		"target_id": closest.ID,
		"distance":  closestDistance,
	}).Debug("Hostile target acquired")

	action := domain.AttackTarget(closest.ID)
	action.Data = map[string]any{"distance": closestDistance}
	return action
}

// ApplyAction применяет к NPC только позиционную часть действия - тот же
// шаг со знаком по осям, что и в хендлере движения. Оба пути мутации
// обязаны использовать одно правило, иначе игрок и NPC двигались бы
// по-разному. Используется драйверами симуляции, которым нужно разделить
// "решить" и "сделать".
func ApplyAction(action domain.Action, npc *domain.Entity, world *domain.WorldState) {
	if action.Type != domain.ActionMove || action.TargetPos == nil {
		return
	}
	dx, dy := npc.Pos.StepToward(*action.TargetPos)
	npc.Pos.X += dx
	npc.Pos.Y += dy
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
