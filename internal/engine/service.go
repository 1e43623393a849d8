package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scottfrye/dnd/internal/admin"
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/internal/network"
	"github.com/scottfrye/dnd/internal/systems"
	"github.com/scottfrye/dnd/pkg/api"
	"github.com/scottfrye/dnd/pkg/logger"
)

// GameService связывает части симуляции в одно целое: мир, движок,
// расписание событий, часы, обработчик действий и рассылку клиентам.
// Само ядро однопоточное; mu сериализует полные шаги симуляции,
// приходящие из разных websocket-соединений.
type GameService struct {
	mu sync.Mutex

	World   *domain.WorldState
	Engine  *GameEngine
	Events  *EventSystem
	Clock   *TimeSystem
	Actions *ActionHandler
	Hub     *network.Broadcaster
}

func NewGameService(world *domain.WorldState, mode GameMode, resolver handlers.CombatResolver) *GameService {
	if world == nil {
		world = domain.NewWorldState()
	}
	return &GameService{
		World:   world,
		Engine:  NewGameEngine(world, mode),
		Events:  NewEventSystem(),
		Clock:   NewTimeSystem(world.Time()),
		Actions: NewActionHandler(world, resolver),
		Hub:     network.NewBroadcaster(),
	}
}

// ProcessCommand - точка входа для команд клиента. LOGIN и INIT только
// триггерят отправку состояния; остальные команды превращаются в действие
// и продвигают симуляцию на один шаг.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) {
	switch cmd.Action {
	case "LOGIN", "INIT":
		s.mu.Lock()
		s.Hub.SendTo(cmd.Token, s.stateResponse(nil))
		s.mu.Unlock()
		return
	}

	action, err := cmd.ToAction()
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"token":  cmd.Token,
			"action": cmd.Action,
		}).WithError(err).Warn("Rejected client command")
		s.Hub.SendTo(cmd.Token, errorResponse(err))
		return
	}

	s.Step(cmd.Token, &action)
}

// Step продвигает симуляцию на один тик: действие актора (если есть),
// решения NPC, тик мира, часы, отложенные события, рассылка состояния.
func (s *GameService) Step(actorID string, action *domain.Action) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(actorID, action)
}

// RunHeadless гоняет симуляцию заданное число тиков без игрока.
func (s *GameService) RunHeadless(ticks int) (int, error) {
	if ticks < 0 {
		return s.CurrentTick(), ErrNegativeTicks
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.World.Time()
	for i := 0; i < ticks; i++ {
		tick = s.step("", nil)
	}
	return tick, nil
}

// JoinPlayer возвращает сущность игрока, создавая её при первом входе.
func (s *GameService) JoinPlayer(entityID string) *domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent := s.World.GetEntity(entityID); ent != nil {
		return ent
	}

	player := domain.NewEntity(entityID, domain.Position{X: 0, Y: 0, LocationID: "start"})
	player.Properties[domain.PropType] = "player"
	player.Properties[domain.PropHP] = 10
	if err := s.World.AddEntity(player); err != nil {
		// Гонки исключены (мир под mu); сюда попасть нельзя.
		logger.Log.WithError(err).Error("Failed to spawn player")
		return s.World.GetEntity(entityID)
	}

	logger.Log.WithField("entity_id", entityID).Info("Player spawned")
	return player
}

// ExecuteAdmin выполняет административную команду под тем же замком,
// что и шаг симуляции, и рассылает обновленное состояние при успехе.
func (s *GameService) ExecuteAdmin(registry *admin.Registry, command string, args map[string]any) admin.CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := registry.Execute(command, s.World, args)
	if result.Success {
		s.Hub.Broadcast(s.stateResponse(nil))
	}
	return result
}

// CurrentTick возвращает время мира без побочных эффектов.
func (s *GameService) CurrentTick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.World.Time()
}

// Snapshot снимает копию состояния мира для сохранения или отладки.
func (s *GameService) Snapshot() domain.WorldSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.World.Snapshot()
}

// PendingEvents возвращает несработавшие события для /debug/events.
func (s *GameService) PendingEvents() []PendingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Events.Pending()
}

// ClockComponents возвращает игровые часы для /debug/time.
func (s *GameService) ClockComponents() TimeComponents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Clock.Components()
}

// step - тело шага. Вызывается только под mu.
func (s *GameService) step(actorID string, action *domain.Action) int {
	if action != nil && actorID != "" {
		s.Actions.HandleAction(*action, actorID)
	}

	s.runBehaviors(actorID)

	tick := s.Engine.Step(action)
	if _, err := s.Clock.Advance(1); err != nil {
		logger.Log.WithError(err).Error("Clock advance failed")
	}

	results := s.Events.Tick(tick)
	logs := eventLogs(results)

	s.Hub.Broadcast(s.stateResponse(logs))
	return tick
}

// runBehaviors дает ход каждому NPC с настроенным поведением.
// Порядок обхода - по возрастанию ID, чтобы шаг был воспроизводимым.
func (s *GameService) runBehaviors(actorID string) {
	for _, id := range s.World.AllEntityIDs() {
		if id == actorID {
			continue
		}
		npc := s.World.GetEntity(id)
		if npc == nil || npc.StringProp(domain.PropBehavior, "") == "" {
			continue
		}

		decide := systems.BehaviorFor(npc)
		act := decide(npc, s.World)
		if act.Type == domain.ActionIdle {
			continue
		}
		s.Actions.HandleAction(act, id)
	}
}

// stateResponse собирает UPDATE-сообщение. Вызывается только под mu.
func (s *GameService) stateResponse(logs []api.LogEntry) api.ServerResponse {
	comps := s.Clock.Components()
	resp := api.SnapshotResponse(s.World.Snapshot(), &api.ClockView{
		Days:    comps.Days,
		Hours:   comps.Hours,
		Minutes: comps.Minutes,
		Seconds: comps.Seconds,
	})
	resp.Logs = logs
	return resp
}

func eventLogs(results []EventResult) []api.LogEntry {
	var logs []api.LogEntry
	now := time.Now().UnixMilli()
	for _, res := range results {
		entry := api.LogEntry{Type: "INFO", Timestamp: now}
		if res.Err != nil {
			entry.Type = "ERROR"
			entry.Text = "event " + res.EventID + " failed: " + res.Err.Error()
		} else {
			entry.Text = "event " + res.EventID + " fired"
		}
		logs = append(logs, entry)
	}
	return logs
}

func errorResponse(err error) api.ServerResponse {
	return api.ServerResponse{
		Type: "LOG",
		Logs: []api.LogEntry{{
			Text:      err.Error(),
			Type:      "ERROR",
			Timestamp: time.Now().UnixMilli(),
		}},
	}
}
