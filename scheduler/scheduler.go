package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchedulerService runs the maintenance tasks on their cron schedules and
// allows admins to trigger them by name.
type SchedulerService struct {
	scheduler       *gocron.Scheduler
	DB              *gorm.DB
	log             *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	mu              sync.RWMutex
	registeredTasks map[string]Task
}

func NewSchedulerService(DB *gorm.DB, log *zap.Logger) *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerService{
		scheduler:       gocron.NewScheduler(time.UTC),
		DB:              DB,
		log:             log,
		ctx:             ctx,
		cancel:          cancel,
		registeredTasks: make(map[string]Task),
	}
}

func (s *SchedulerService) Start() {
	s.log.Info("starting scheduler", zap.Int("tasks", len(s.ListTasks())))
	s.scheduler.StartAsync()
}

func (s *SchedulerService) Stop() {
	s.log.Info("stopping scheduler")
	s.scheduler.Stop()
	s.cancel()
}

func (s *SchedulerService) RegisterTasks() error {
	for _, task := range MaintenanceTasks(s.DB, s.log) {
		if !task.Enabled {
			s.log.Debug("skipping disabled task", zap.String("task", task.Name))
			continue
		}
		if err := s.AddTask(task); err != nil {
			return err
		}
	}
	return nil
}

func (s *SchedulerService) AddTask(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registeredTasks[task.Name]; exists {
		return fmt.Errorf("task with name '%s' already exists", task.Name)
	}

	job, err := s.scheduler.Cron(task.Schedule).Do(func() {
		s.run(s.ctx, task)
	})
	if err != nil {
		return fmt.Errorf("schedule task %s: %w", task.Name, err)
	}
	job.Tag(task.Name)

	s.registeredTasks[task.Name] = task
	s.log.Debug("registered task", zap.String("task", task.Name), zap.String("schedule", task.Schedule))
	return nil
}

func (s *SchedulerService) run(ctx context.Context, task Task) error {
	start := time.Now()
	err := task.Handler(ctx)
	if err != nil {
		s.log.Error("task failed", zap.String("task", task.Name), zap.Error(err))
		return err
	}
	s.log.Info("task finished", zap.String("task", task.Name), zap.Duration("took", time.Since(start)))
	return nil
}

// ListTasks is sorted by name.
func (s *SchedulerService) ListTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.registeredTasks))
	for _, task := range s.registeredTasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks
}

// RunTaskNow runs a task synchronously outside its schedule.
func (s *SchedulerService) RunTaskNow(ctx context.Context, name string) error {
	s.mu.RLock()
	task, exists := s.registeredTasks[name]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return s.run(ctx, task)
}
