package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/config"
	"github.com/oksasatya/go-talent-marketplace/internal/application"
	repo "github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-talent-marketplace/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-talent-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/go-talent-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
	"github.com/oksasatya/go-talent-marketplace/pkg/validation"
)

const profileCachePrefix = "profile:user:"

// Container holds the infrastructure built in main and hands it to the router.
// Optional clients (Redis, GCS, Elasticsearch, RabbitMQ) may be nil; the
// features behind them are then switched off.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	JWT       *helpers.JWTManager
	Hasher    *helpers.PasswordHasher
	Validator *validation.Validator

	Users        repo.UserRepository
	Profiles     repo.ProfileRepository
	HireRequests repo.HireRequestRepository
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config:    cfg,
		Logger:    logger,
		JWT:       helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:    helpers.NewPasswordHasher(cfg.BcryptCost),
		Validator: validation.New(),
	}
}

// UseMemoryStorage backs every repository with process memory.
func (c *Container) UseMemoryStorage() {
	c.Users = memory.NewUserRepository()
	c.Profiles = memory.NewProfileRepository()
	c.HireRequests = memory.NewHireRequestRepository()
}

// UsePostgres backs every repository with the given pool.
func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.PGPool = pool
	c.Users = pginfra.NewUserRepository(pool)
	c.Profiles = pginfra.NewProfileRepository(pool)
	c.HireRequests = pginfra.NewHireRequestRepository(pool)
}

// ProfileIndex returns the search index, or nil when Elasticsearch is not configured.
func (c *Container) ProfileIndex() *search.ProfileIndex {
	if c.ES == nil {
		return nil
	}
	return search.NewProfileIndex(c.ES, c.Config.ESProfilesIndex, c.Logger)
}

type Services struct {
	Users    *application.UserService
	Profiles *application.ProfileService
	Hires    *application.HireService
}

// Services wires the resource services. Optional collaborators are only set when
// their client exists so services never hold a typed nil.
func (c *Container) Services() Services {
	var pub application.Publisher
	if c.RabbitPub != nil {
		pub = c.RabbitPub
	}

	users := application.NewUserService(c.Users, c.Hasher, c.JWT, c.Validator, pub, c.Config, c.Logger)

	profiles := application.NewProfileService(c.Profiles, c.Users, c.Validator, c.Logger)
	profiles.EnforceReferences = c.Config.EnforceReferences
	if c.Redis != nil {
		profiles.Cache = helpers.NewJSONCache(c.Redis, profileCachePrefix, c.Config.ProfileCacheTTL)
	}
	if c.GCS != nil && c.Config.GCSBucket != "" {
		profiles.Storage = helpers.NewGCSUploader(c.GCS, c.Config.GCSBucket)
	}
	if idx := c.ProfileIndex(); idx != nil {
		profiles.Index = idx
	}

	hires := application.NewHireService(c.HireRequests, c.Users, c.Validator, c.Logger)
	hires.EnforceReferences = c.Config.EnforceReferences
	hires.Publisher = pub
	hires.Config = c.Config

	return Services{Users: users, Profiles: profiles, Hires: hires}
}
