package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "github.com/casper4088/quiz-bot/internal/adapters/in/http"
	"github.com/casper4088/quiz-bot/internal/adapters/in/telegram"
	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence"
	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence/conversationrepo"
	"github.com/casper4088/quiz-bot/internal/adapters/out/redisstate"
	outbound "github.com/casper4088/quiz-bot/internal/adapters/out/telegram"
	"github.com/casper4088/quiz-bot/internal/adapters/out/xlsx"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/queries"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/jobs"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Session scopes keep the dialogues of the two bots apart: in a private chat
// both bots see the same chat id.
const (
	QuizScope    = "quiz"
	ServiceScope = "service"
)

type CompositionRoot struct {
	cfg          Config
	gormDB       *gorm.DB
	uowFactory   *persistence.GormUnitOfWorkFactory
	redis        *redis.Client
	registry     *prometheus.Registry
	botMetrics   *metrics.BotMetrics
	jobMetrics   *metrics.JobMetrics
	storeMetrics *metrics.StoreMetrics
	clock        kernel.Clock
	logger       *slog.Logger
}

// NewCompositionRoot wires shared infrastructure. When REDIS_URL is set the
// connection is checked here.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	root := &CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		registry:     registry,
		botMetrics:   metrics.NewBotMetrics(registry),
		jobMetrics:   metrics.NewJobMetrics(registry),
		storeMetrics: metrics.NewStoreMetrics(registry),
		clock:        kernel.RealClock(),
		logger:       logger,
	}
	root.uowFactory = persistence.NewGormUnitOfWorkFactory(gormDB, root.recordCommitted)

	if cfg.RedisURL != "" {
		client, err := redisstate.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		root.redis = client
	}
	return root, nil
}

// Close releases what the root opened itself. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) recordCommitted(committed []persistence.TrackedAggregate) {
	for _, a := range committed {
		kind := persistence.AggregateKind(a.Aggregate)
		c.storeMetrics.IncCommitted(kind)
		c.logger.Debug("aggregate committed", "kind", kind, "id", a.ID.String())
	}
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// ConversationStore returns the session store of one bot: Redis when
// configured, the database otherwise.
func (c *CompositionRoot) ConversationStore(scope string) ports.ConversationStore {
	if c.redis != nil {
		return redisstate.NewConversationStore(c.redis, scope, c.cfg.SessionTTL)
	}
	return conversationrepo.NewGormConversationStore(c.gormDB, scope, c.cfg.SessionTTL, c.clock)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) submissionUoWFactory() commands.SubmissionUoWFactory {
	return FuncSubmissionUoWFactory(func() commands.SubmissionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitQuizAnswersCommandHandler() (commands.SubmitQuizAnswersCommandHandler, error) {
	key, err := c.cfg.AnswerKey()
	if err != nil {
		return commands.SubmitQuizAnswersCommandHandler{}, err
	}
	return commands.NewSubmitQuizAnswersCommandHandler(c.submissionUoWFactory(), key, c.clock), nil
}

func (c *CompositionRoot) CreateExportSubmissionsCommandHandler() commands.ExportSubmissionsCommandHandler {
	return commands.NewExportSubmissionsCommandHandler(c.submissionUoWFactory(), xlsx.NewExporter())
}

func (c *CompositionRoot) CreateExportOrdersCommandHandler() commands.ExportOrdersCommandHandler {
	return commands.NewExportOrdersCommandHandler(c.orderUoWFactory(), xlsx.NewExporter())
}

// CreateOrderNotifier posts order cards through the service bot. Message ids
// of agent broadcasts are stored outside any order transaction.
func (c *CompositionRoot) CreateOrderNotifier(sender outbound.Sender) (*outbound.OrderNotifier, error) {
	broadcasts := c.uowFactory.CreateGorm().BroadcastRepository()
	return outbound.NewOrderNotifier(sender, broadcasts, c.cfg.Agents(), c.botMetrics, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler(notifier ports.OrderNotifier) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler(notifier ports.OrderNotifier) commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.orderUoWFactory(), notifier, c.logger)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler(notifier ports.OrderNotifier) commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), notifier, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler(notifier ports.OrderNotifier) commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory(), notifier, c.logger)
}

func (c *CompositionRoot) CreateGetLeaderboardQueryHandler() queries.GetLeaderboardQueryHandler {
	return queries.NewGetLeaderboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSubmissionsQueryHandler() queries.ListSubmissionsQueryHandler {
	return queries.NewListSubmissionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuizRouter(bot telegram.BotAPI) (*telegram.QuizRouter, error) {
	submit, err := c.CreateSubmitQuizAnswersCommandHandler()
	if err != nil {
		return nil, err
	}
	key, _ := c.cfg.AnswerKey()

	return telegram.NewQuizRouter(telegram.QuizRouterDeps{
		Bot:         bot,
		Sessions:    c.ConversationStore(QuizScope),
		Submit:      submit,
		Leaderboard: c.CreateGetLeaderboardQueryHandler(),
		Export:      c.CreateExportSubmissionsCommandHandler(),
		QuizID:      c.cfg.QuizID,
		Total:       key.Total(),
		Admins:      c.cfg.Admins(),
		Clock:       c.clock,
		Metrics:     c.botMetrics,
		Logger:      c.logger,
	})
}

// CreateServiceRouter wires the service bot. The same bot both receives
// updates and posts order notifications.
func (c *CompositionRoot) CreateServiceRouter(bot telegram.BotAPI) (*telegram.ServiceRouter, error) {
	notifier, err := c.CreateOrderNotifier(bot)
	if err != nil {
		return nil, fmt.Errorf("order notifier: %w", err)
	}

	return telegram.NewServiceRouter(telegram.ServiceRouterDeps{
		Bot:       bot,
		Sessions:  c.ConversationStore(ServiceScope),
		Create:    c.CreateCreateOrderCommandHandler(notifier),
		Assign:    c.CreateAssignOrderCommandHandler(notifier),
		SetStatus: c.CreateSetOrderStatusCommandHandler(notifier),
		Rate:      c.CreateRateOrderCommandHandler(notifier),
		Agents:    c.cfg.Agents(),
		Clock:     c.clock,
		Metrics:   c.botMetrics,
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListSubmissionsQueryHandler(),
		c.CreateGetLeaderboardQueryHandler(),
		c.registry,
	)
	return httpin.NewEcho(server)
}

func (c *CompositionRoot) CreateExportJob() *jobs.ExportJob {
	return jobs.NewExportJob(
		c.CreateExportSubmissionsCommandHandler(),
		c.CreateExportOrdersCommandHandler(),
		c.cfg.ExportDir,
		c.cfg.ExportCron,
		c.jobMetrics,
		c.logger,
	)
}

// CreateJobManager schedules the export and, when sessions live in the
// database, the expired session cleanup of both bots.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	all := []jobs.Job{c.CreateExportJob()}
	if c.redis == nil {
		for _, scope := range []string{QuizScope, ServiceScope} {
			store := conversationrepo.NewGormConversationStore(c.gormDB, scope, c.cfg.SessionTTL, c.clock)
			all = append(all, jobs.NewSessionCleanupJob(store, c.jobMetrics, c.logger.With("scope", scope)))
		}
	}
	return jobs.NewJobManager(all...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubmissionUoWFactory func() commands.SubmissionUoW

func (f FuncSubmissionUoWFactory) Create() commands.SubmissionUoW {
	return f()
}
