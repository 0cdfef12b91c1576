package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/geo"
	"marketplace/internal/adapters/out/mail"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/services"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	domainservices "marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/cache"
	"marketplace/internal/pkg/ordernum"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, services and use-case handlers. Shared
// state (the unread-count cache, the dispatcher, the number generator) is
// constructed once here and injected everywhere.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	counts     *cache.Cache[int]
	dispatcher *services.Dispatcher
	numbers    *ordernum.Generator
	mailer     ports.Mailer
	geocoder   ports.Geocoder
	adminID    kernel.UUID
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	adminID, err := kernel.UUIDFromString(config.AdminID)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		counts:     cache.New[int](),
		numbers:    ordernum.NewGenerator(ordernum.DefaultPrefix),
		mailer:     mail.NewSMTPMailer(config.SMTPAddr, config.SMTPFrom, config.SMTPUsername, config.SMTPPassword, logger),
		geocoder:   geo.NewClient(config.GeocoderBaseURL, logger),
		adminID:    adminID,
	}

	root.dispatcher, err = services.NewDispatcher(root.notificationRepository(), root.counts, logger)
	if err != nil {
		return nil, err
	}

	return root, nil
}

// notificationRepository returns a repository outside any transaction, used
// by the dispatcher and the retention job.
func (c *CompositionRoot) notificationRepository() ports.NotificationRepository {
	return c.uowFactory.Create().NotificationRepository()
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.numbers, c.dispatcher, c.mailer, c.adminID, c.logger)
}

func (c *CompositionRoot) CreateUpdateSellerStatusCommandHandler() commands.UpdateSellerStatusCommandHandler {
	aggregator := domainservices.NewStatusAggregator(domainservices.NewMinimumProgressPolicy())
	return commands.NewUpdateSellerStatusCommandHandler(c.orderUoWFactory(), aggregator, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	return commands.NewAdvanceDeliveryCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateDeleteNotificationCommandHandler() commands.DeleteNotificationCommandHandler {
	return commands.NewDeleteNotificationCommandHandler(c.notificationUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadCountQueryHandler() queries.GetUnreadCountQueryHandler {
	return queries.NewGetUnreadCountQueryHandler(c.dispatcher)
}

func (c *CompositionRoot) CreateGetSellerOrdersQueryHandler() queries.GetSellerOrdersQueryHandler {
	return queries.NewGetSellerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryRouteQueryHandler() queries.GetDeliveryRouteQueryHandler {
	return queries.NewGetDeliveryRouteQueryHandler(c.gormDB, c.geocoder)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.counts, c.notificationRepository(), c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
