package historystore

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	historyclient "personnel-admin/lib/history-console/client"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

// Provider список записей истории одного активного вида.
// Все обращения к бэкенду за историей идут через него.
type Provider interface {
	Kind() models.HistoryKind
	EmployeeScope() string
	Criteria() historyapimodels.Criteria
	Snapshot() State
	Subscribe() (<-chan State, func())

	Fetch(ctx context.Context, criteria historyapimodels.Criteria) error
	Reload(ctx context.Context) error
	Create(ctx context.Context, rec historyapimodels.Record) (historyapimodels.Record, error)
	Update(ctx context.Context, id string, rec historyapimodels.Record) (historyapimodels.Record, error)
	Remove(ctx context.Context, id string) error
	SwitchKind(ctx context.Context, kind models.HistoryKind) <-chan error
}

// State снимок состояния списка
type State struct {
	Kind     models.HistoryKind
	Criteria historyapimodels.Criteria
	Records  []historyapimodels.Record
	Loading  bool
	Err      *historyclient.Error
}

type Config struct {
	Client         historyclient.Provider
	Kind           models.HistoryKind
	EmployeeScope  string        // сотрудник, для которого открыта страница
	ReconcileDelay time.Duration // пауза перед повторным запросом после создания/изменения
}

func NewInstance(cfg Config) Provider {
	kind := cfg.Kind
	if !kind.IsValid() {
		kind = models.HistoryKindStatus
	}
	return &impl{
		client:         cfg.Client,
		scope:          cfg.EmployeeScope,
		reconcileDelay: cfg.ReconcileDelay,
		kind:           kind,
		criteria:       historyapimodels.Criteria{Employee: cfg.EmployeeScope},
		records:        []historyapimodels.Record{},
		subscribers:    map[chan State]struct{}{},
	}
}

type impl struct {
	client         historyclient.Provider
	scope          string
	reconcileDelay time.Duration

	mu       sync.Mutex
	kind     models.HistoryKind
	criteria historyapimodels.Criteria
	records  []historyapimodels.Record
	loading  bool
	err      *historyclient.Error
	seq      uint64

	subMu       sync.Mutex
	subscribers map[chan State]struct{}
}

// fetchTag метка запроса: ответ применяется, только если вид еще активен
// и после него не был отправлен более новый запрос
type fetchTag struct {
	kind     models.HistoryKind
	seq      uint64
	criteria historyapimodels.Criteria
}

func (s *impl) Kind() models.HistoryKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

func (s *impl) EmployeeScope() string {
	return s.scope
}

func (s *impl) Criteria() historyapimodels.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *impl) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *impl) snapshotLocked() State {
	records := make([]historyapimodels.Record, len(s.records))
	copy(records, s.records)
	return State{
		Kind:     s.kind,
		Criteria: s.criteria,
		Records:  records,
		Loading:  s.loading,
		Err:      s.err,
	}
}

// Subscribe канал с последним состоянием после каждого изменения.
// Промежуточные состояния медленный подписчик может пропустить.
func (s *impl) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, ch)
			s.subMu.Unlock()
		})
	}
}

// publish вызывается под s.mu, чтобы подписчики не получили состояния не по порядку
func (s *impl) publish(state State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}

func (s *impl) Fetch(ctx context.Context, criteria historyapimodels.Criteria) error {
	s.mu.Lock()
	criteria = criteria.Normalize()
	if s.scope != "" {
		criteria.Employee = s.scope
	}
	s.criteria = criteria
	tag := s.issueLocked()
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	return s.run(ctx, tag)
}

func (s *impl) Reload(ctx context.Context) error {
	return s.Fetch(ctx, s.Criteria())
}

func (s *impl) issueLocked() fetchTag {
	s.seq++
	s.loading = true
	return fetchTag{
		kind:     s.kind,
		seq:      s.seq,
		criteria: s.criteria,
	}
}

func (s *impl) run(ctx context.Context, tag fetchTag) error {
	list, err := s.client.List(ctx, tag.kind, tag.criteria)
	clientErr := historyclient.AsError(err)

	s.mu.Lock()
	if tag.kind != s.kind || tag.seq != s.seq {
		s.mu.Unlock()
		log.
			WithField("kind", tag.kind).
			WithField("seq", tag.seq).
			Debug("ответ устаревшего запроса истории отброшен")
		if clientErr != nil {
			return clientErr
		}
		return nil
	}
	s.loading = false
	if clientErr != nil {
		// рядом с ошибкой старые данные не показываем
		s.records = []historyapimodels.Record{}
		s.err = clientErr
	} else {
		s.records = list
		s.err = nil
	}
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	if clientErr != nil {
		log.
			WithField("kind", tag.kind).
			WithError(clientErr).
			Warn("ошибка получения истории")
		return clientErr
	}
	return nil
}

func (s *impl) SwitchKind(ctx context.Context, kind models.HistoryKind) <-chan error {
	done := make(chan error, 1)
	if !kind.IsValid() {
		_, err := models.ParseHistoryKind(string(kind))
		done <- historyclient.NewInvalidError(err)
		return done
	}

	s.mu.Lock()
	s.kind = kind
	s.records = []historyapimodels.Record{}
	s.err = nil
	s.criteria = historyapimodels.Criteria{Employee: s.scope}
	tag := s.issueLocked()
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	go func() {
		done <- s.run(ctx, tag)
	}()
	return done
}

func (s *impl) Create(ctx context.Context, rec historyapimodels.Record) (historyapimodels.Record, error) {
	created, err := s.client.Create(ctx, rec)
	if err != nil {
		return historyapimodels.Record{}, s.mutationError("создания", rec.Kind, err)
	}
	if created.Kind == "" {
		created.Kind = rec.Kind
	}

	s.mu.Lock()
	if created.Kind == s.kind {
		s.records = append([]historyapimodels.Record{created}, s.records...)
	}
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	s.reconcile(ctx, s.reconcileDelay)
	return created, nil
}

func (s *impl) Update(ctx context.Context, id string, rec historyapimodels.Record) (historyapimodels.Record, error) {
	updated, err := s.client.Update(ctx, id, rec)
	if err != nil {
		return historyapimodels.Record{}, s.mutationError("изменения", rec.Kind, err)
	}
	if updated.Kind == "" {
		updated.Kind = rec.Kind
	}
	if updated.ID == "" {
		updated.ID = id
	}

	s.mu.Lock()
	if updated.Kind == s.kind {
		for i := range s.records {
			if s.records[i].ID == id {
				s.records[i] = updated
				break
			}
		}
	}
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	s.reconcile(ctx, s.reconcileDelay)
	return updated, nil
}

func (s *impl) Remove(ctx context.Context, id string) error {
	kind := s.Kind()
	if err := s.client.Delete(ctx, kind, id); err != nil {
		return s.mutationError("удаления", kind, err)
	}

	s.mu.Lock()
	if s.kind == kind {
		records := make([]historyapimodels.Record, 0, len(s.records))
		for _, rec := range s.records {
			if rec.ID != id {
				records = append(records, rec)
			}
		}
		s.records = records
	}
	s.publish(s.snapshotLocked())
	s.mu.Unlock()

	s.reconcile(ctx, 0)
	return nil
}

func (s *impl) reconcile(ctx context.Context, delay time.Duration) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
	if err := s.Reload(ctx); err != nil {
		log.WithError(err).Warn("ошибка обновления списка истории после изменения")
	}
}

func (s *impl) mutationError(op string, kind models.HistoryKind, err error) *historyclient.Error {
	clientErr := historyclient.AsError(err)
	log.
		WithField("kind", kind).
		WithError(err).
		Warnf("ошибка %v записи истории", op)
	return clientErr
}
