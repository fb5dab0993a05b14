package container

import (
	"context"
	"database/sql"
	"path/filepath"

	"detnet-agent/internal/application/usecases"
	"detnet-agent/internal/domain/interfaces"
	"detnet-agent/internal/domain/services"
	"detnet-agent/internal/infrastructure/adapters"
	"detnet-agent/internal/infrastructure/config"
	"detnet-agent/internal/infrastructure/hcn"
	"detnet-agent/internal/infrastructure/health"
	"detnet-agent/internal/infrastructure/persistence"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// 인프라스트럭처 어댑터들
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	accessor   interfaces.NetworkAccessor
	inspector  interfaces.AdapterInspector

	// 서비스들
	healthService *health.HealthService
	builder       *services.DefinitionBuilder
	naming        *services.AdapterNamingService

	// 레포지토리
	repository interfaces.ReconcileHistoryRepository

	// 유스케이스
	reconcileNetworkUseCase *usecases.ReconcileNetworkUseCase
	inspectAdapterUseCase   *usecases.InspectAdapterUseCase

	// 데이터베이스
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(); err != nil {
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	if err := container.initializeUseCases(); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.clock = adapters.NewRealClock()
	c.inspector = adapters.NewNetAdapterInspector(c.logger)

	// 호스트 네트워크 서비스 바인딩
	ops, err := hcn.NewNativeNetworkOperations()
	if err != nil {
		return err
	}
	c.accessor = hcn.NewNetworkAccessor(ops, c.logger)

	// 로컬 이력 저장소
	if err := c.fileSystem.MkdirAll(c.config.State.Directory, 0755); err != nil {
		return err
	}

	databasePath := filepath.Join(c.config.State.Directory, "detnet.db")
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return err
	}
	c.db = db

	repository := persistence.NewSQLiteRepository(c.db, c.logger)
	if err := repository.Initialize(context.Background()); err != nil {
		return err
	}
	c.repository = repository

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	c.healthService = health.NewHealthService(c.clock, c.logger)
	c.builder = services.NewDefinitionBuilder()
	c.naming = services.NewAdapterNamingService()
	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases() error {
	c.reconcileNetworkUseCase = usecases.NewReconcileNetworkUseCase(
		c.accessor,
		c.inspector,
		c.repository,
		c.builder,
		c.naming,
		c.clock,
		c.logger,
	)

	c.inspectAdapterUseCase = usecases.NewInspectAdapterUseCase(
		c.inspector,
		c.repository,
		c.naming,
		c.logger,
	)

	return nil
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetReconcileNetworkUseCase는 네트워크 조정 유스케이스를 반환합니다
func (c *Container) GetReconcileNetworkUseCase() *usecases.ReconcileNetworkUseCase {
	return c.reconcileNetworkUseCase
}

// GetInspectAdapterUseCase는 어댑터 상태 조회 유스케이스를 반환합니다
func (c *Container) GetInspectAdapterUseCase() *usecases.InspectAdapterUseCase {
	return c.inspectAdapterUseCase
}

// Close는 컨테이너를 정리합니다
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
