// en internal/task/application/board_service.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	// --- Importaciones del dominio y compartidas ---
	sharedEvents "github.com/davicafu/taskboard/internal/shared/events"
	sharedCache "github.com/davicafu/taskboard/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/taskboard/internal/shared/infra/utils"
	sharedBus "github.com/davicafu/taskboard/internal/shared/platform/bus"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoadErrorNotice es el aviso que ve el usuario cuando el snapshot no se pudo leer.
const LoadErrorNotice = "Error loading tasks."

// ErrBoardLoading se devuelve si llega una mutación antes de que termine Load;
// aplicarla ahora la perdería al instalar el snapshot.
var ErrBoardLoading = errors.New("board is still loading")

// publishTimeout acota cuánto puede retener una publicación el mutex del tablero.
const publishTimeout = 500 * time.Millisecond

// Board es lo que la vista necesita para pintarse.
type Board struct {
	Filter  taskDomain.Filter `json:"filter"`
	Tasks   []taskDomain.Task `json:"tasks"`
	Notice  string            `json:"notice,omitempty"`
	Loading bool              `json:"loading"`
}

// BoardService es el contenedor de estado del tablero: guarda el TaskStore
// actual y el filtro, aplica las operaciones puras del dominio y persiste
// cada cambio aceptado en el mismo orden en que llegan los eventos.
type BoardService struct {
	repo      taskDomain.SnapshotRepository
	publisher sharedBus.EventPublisher
	cache     sharedCache.Cache
	log       *zap.Logger
	validator *taskDomain.FormValidator

	now       func() time.Time
	newID     taskDomain.IDGenerator
	loadDelay time.Duration
	cacheTTL  int
	session   string

	// mu serializa los eventos: hay un único escritor lógico.
	mu      sync.Mutex
	store   taskDomain.TaskStore
	filter  taskDomain.Filter
	notice  string
	loading bool
}

type Option func(*BoardService)

// WithClock sustituye time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *BoardService) { s.now = now }
}

func WithIDGenerator(gen taskDomain.IDGenerator) Option {
	return func(s *BoardService) { s.newID = gen }
}

// WithLoadDelay fija el retardo cosmético antes de la primera lectura.
func WithLoadDelay(d time.Duration) Option {
	return func(s *BoardService) { s.loadDelay = d }
}

// WithCacheTTL fija cuántos segundos vive una proyección en caché.
func WithCacheTTL(secs int) Option {
	return func(s *BoardService) { s.cacheTTL = secs }
}

// NewBoardService es el constructor. publisher y cache pueden ser nil.
func NewBoardService(repo taskDomain.SnapshotRepository, publisher sharedBus.EventPublisher, cache sharedCache.Cache, log *zap.Logger, opts ...Option) *BoardService {
	s := &BoardService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		log:       log,
		validator: taskDomain.NewFormValidator(),
		now:       time.Now,
		newID:     uuid.New,
		cacheTTL:  60,
		session:   uuid.NewString(),
		filter:    taskDomain.FilterAll,
		loading:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load lee el snapshot inicial. Si está vacío, corrupto o no se puede leer,
// siembra las tareas por defecto; solo devuelve error si ctx se cancela.
func (s *BoardService) Load(ctx context.Context) error {
	if s.loadDelay > 0 {
		select {
		case <-time.After(s.loadDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var snapshot []taskDomain.Task
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, isSeedCondition, func() error {
		var errRetry error
		snapshot, errRetry = s.repo.Read(ctx)
		return errRetry
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var store taskDomain.TaskStore
	if err == nil {
		store, err = taskDomain.Load(snapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.store = store
		s.log.Info("Tasks loaded", zap.Int("count", store.Len()))
	case errors.Is(err, taskDomain.ErrEmptySnapshot):
		s.log.Info("No stored tasks, seeding defaults")
		s.seedLocked(ctx)
	default:
		s.log.Warn("Failed to load tasks, seeding defaults", zap.Error(err))
		s.seedLocked(ctx)
		s.notice = LoadErrorNotice
	}

	s.loading = false
	return nil
}

func isSeedCondition(err error) bool {
	return errors.Is(err, taskDomain.ErrEmptySnapshot) || errors.Is(err, taskDomain.ErrCorruptSnapshot)
}

func (s *BoardService) seedLocked(ctx context.Context) {
	// Las semillas tienen ids nuevos y únicos, Load no puede fallar.
	store, _ := taskDomain.Load(taskDomain.DefaultTasks(s.now(), s.newID))
	s.store = store
	s.persistLocked(ctx)
}

// AddOrUpdateTask valida el formulario y crea una tarea, o edita editingID si no es nil.
// Un editingID que ya no existe es un no-op silencioso: devuelve (nil, nil).
func (s *BoardService) AddOrUpdateTask(ctx context.Context, raw taskDomain.RawInput, editingID *uuid.UUID) (*taskDomain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return nil, ErrBoardLoading
	}

	draft, err := s.validator.Validate(raw)
	if err != nil {
		s.rejectLocked(err)
		return nil, err
	}

	if editingID != nil {
		next, err := taskDomain.Update(s.store, *editingID, taskDomain.PatchFromDraft(draft))
		if err != nil {
			if errors.Is(err, taskDomain.ErrTaskNotFound) {
				s.log.Debug("Update ignored, task not found", zap.String("task_id", editingID.String()))
				s.notice = ""
				return nil, nil
			}
			s.rejectLocked(err)
			return nil, err
		}
		task, _, _ := next.Find(*editingID)
		s.commitLocked(ctx, next, taskDomain.TaskUpdated, task)
		s.notice = ""
		return &task, nil
	}

	next, task, err := taskDomain.Create(s.store, draft, s.now(), s.newID)
	if err != nil {
		s.rejectLocked(err)
		return nil, err
	}
	s.commitLocked(ctx, next, taskDomain.TaskCreated, task)
	s.notice = ""
	return &task, nil
}

func (s *BoardService) rejectLocked(err error) {
	var verr *taskDomain.ValidationError
	if errors.As(err, &verr) {
		s.notice = verr.Message
	}
}

// DeleteTask elimina la tarea. Un id inexistente no hace nada.
func (s *BoardService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrBoardLoading
	}

	task, _, ok := s.store.Find(id)
	if !ok {
		s.log.Debug("Delete ignored, task not found", zap.String("task_id", id.String()))
		return nil
	}
	next, err := taskDomain.Delete(s.store, id)
	if err != nil {
		return err
	}
	s.commitLocked(ctx, next, taskDomain.TaskDeleted, task)
	return nil
}

// ToggleTask alterna el estado. Devuelve nil si el id no existe.
func (s *BoardService) ToggleTask(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return nil, ErrBoardLoading
	}

	next, err := taskDomain.ToggleStatus(s.store, id)
	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			s.log.Debug("Toggle ignored, task not found", zap.String("task_id", id.String()))
			return nil, nil
		}
		return nil, err
	}
	task, _, _ := next.Find(id)
	s.commitLocked(ctx, next, taskDomain.TaskToggled, task)
	return &task, nil
}

// SetFilter cambia el filtro activo. Un nombre desconocido deja el filtro como estaba.
func (s *BoardService) SetFilter(name string) error {
	f, err := taskDomain.ParseFilter(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// ReorderTask mueve una tarea dentro de la secuencia que la vista está mostrando.
// Devuelve false si el movimiento se ignoró (fuera de rango, mismo índice o tarea completada).
func (s *BoardService) ReorderTask(ctx context.Context, from, to int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return false, ErrBoardLoading
	}

	view := taskDomain.Project(s.store, s.filter, s.now())
	next, moved := taskDomain.Reorder(s.store, from, to, view)
	if !moved {
		s.log.Debug("Reorder ignored", zap.Int("from", from), zap.Int("to", to))
		return false, nil
	}
	task, _, _ := next.Find(view[from].ID)
	s.commitLocked(ctx, next, taskDomain.TaskReordered, task)
	return true, nil
}

// ProjectedTasks devuelve la proyección del filtro activo.
func (s *BoardService) ProjectedTasks(ctx context.Context) []taskDomain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectLocked(ctx)
}

func (s *BoardService) projectLocked(ctx context.Context) []taskDomain.Task {
	today := s.now()
	key := taskDomain.ProjectionCacheKey(s.session, s.store.Version(), s.filter, today)

	var cached []taskDomain.Task
	if sharedCache.GetOrMiss(ctx, s.cache, key, &cached, s.log) {
		return cached
	}

	tasks := taskDomain.Project(s.store, s.filter, today)
	sharedCache.AsyncCacheSet(s.cache, key, tasks, s.cacheTTL, s.log)
	return tasks
}

// Board devuelve todo lo que la vista pinta en un único paso consistente.
func (s *BoardService) Board(ctx context.Context) Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Board{
		Filter:  s.filter,
		Tasks:   s.projectLocked(ctx),
		Notice:  s.notice,
		Loading: s.loading,
	}
}

// Tasks devuelve el orden canónico completo, sin filtrar ni particionar.
func (s *BoardService) Tasks() []taskDomain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Tasks()
}

func (s *BoardService) Filter() taskDomain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *BoardService) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *BoardService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// commitLocked instala el nuevo store, lo persiste y publica el cambio.
// Un fallo de escritura solo se registra: el estado en memoria se conserva.
func (s *BoardService) commitLocked(ctx context.Context, next taskDomain.TaskStore, eventType string, task taskDomain.Task) {
	s.store = next
	s.persistLocked(ctx)
	s.publishLocked(ctx, eventType, task)
}

func (s *BoardService) persistLocked(ctx context.Context) {
	if err := s.repo.Write(ctx, s.store.Tasks()); err != nil {
		s.log.Error("Failed to persist tasks",
			zap.Uint64("version", s.store.Version()),
			zap.Error(err),
		)
	}
}

func (s *BoardService) publishLocked(ctx context.Context, eventType string, task taskDomain.Task) {
	if s.publisher == nil {
		return
	}

	tasks := s.store.Tasks()
	order := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		order[i] = t.ID
	}

	data, err := json.Marshal(taskDomain.TaskChanged{Task: task, Order: order, Version: s.store.Version()})
	if err != nil {
		s.log.Error("Failed to marshal change event", zap.Error(err))
		return
	}

	evt := sharedEvents.IntegrationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Key:       task.PartitionKey(),
		Timestamp: s.now().UTC(),
		Data:      data,
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, evt); err != nil {
		s.log.Warn("⚠️ Change event not published",
			zap.String("event_type", eventType),
			zap.String("task_id", task.ID.String()),
			zap.Error(err),
		)
	}
}
