package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detnet-agent/internal/application/polling"
	"detnet-agent/internal/application/usecases"
	"detnet-agent/internal/domain/entities"
	domainErrors "detnet-agent/internal/domain/errors"
	"detnet-agent/internal/infrastructure/adapters"
	"detnet-agent/internal/infrastructure/config"
	"detnet-agent/internal/infrastructure/container"
	"detnet-agent/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// 조정 패스 실패를 구분하는 프로세스 종료 코드들입니다
const (
	exitGeneral         = 1
	exitUnsupportedKind = 2
	exitTransport       = 3
	exitAdapterNotFound = 4
	exitMisconfigured   = 5
)

// errAdapterNotReady는 status 명령에서 어댑터가 준비되지 않았음을 나타냅니다
var errAdapterNotReady = errors.New("어댑터가 준비되지 않음")

func main() {
	logger := newLogger()

	if err := root(logger).Execute(); err != nil {
		logger.WithError(err).Error("Command failed")
		os.Exit(exitCode(err))
	}
}

// newLogger는 로거를 초기화합니다
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// LOG_LEVEL 환경 변수 설정
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// exitCode는 도메인 에러 분류를 종료 코드로 변환합니다
func exitCode(err error) int {
	switch {
	case domainErrors.IsUnsupportedKindError(err):
		return exitUnsupportedKind
	case domainErrors.IsTransportError(err):
		return exitTransport
	case domainErrors.IsNotFoundError(err):
		return exitAdapterNotFound
	case domainErrors.IsVerificationError(err):
		return exitMisconfigured
	default:
		return exitGeneral
	}
}

// root returns the root cobra command.
func root(logger *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "detnet-agent",
		Short:         "Deterministic virtual network provisioner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(reconcile(logger))
	cmd.AddCommand(status(logger))
	cmd.AddCommand(watch(logger))
	cmd.AddCommand(versionCommand())
	cmd.Version = version
	return cmd
}

// versionCommand returns the version cobra command.
func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the agent version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

// reconcile returns the reconcile cobra command.
func reconcile(logger *logrus.Logger) *cobra.Command {
	var kindFlag, gatewayFlag, cidrFlag string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Runs one reconciliation pass for the deterministic network",
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, cfg, err := newContainer(logger)
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			input, err := resolveInput(cfg, kindFlag, gatewayFlag, cidrFlag)
			if err != nil {
				return err
			}

			output, err := appContainer.GetReconcileNetworkUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"outcome":    output.Outcome,
				"network_id": output.NetworkID,
				"adapter":    output.AdapterName,
			}).Info("Reconciliation pass finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(entities.KindWSL), "network kind (wsl, hyperv)")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", "", "gateway address (dotted quad)")
	cmd.Flags().StringVar(&cidrFlag, "cidr", "", "network address (CIDR)")
	return cmd
}

// status returns the status cobra command.
func status(logger *logrus.Logger) *cobra.Command {
	var kindFlag, gatewayFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Reports whether the deterministic adapter is up with the expected gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, _, err := newContainer(logger)
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			output, err := appContainer.GetInspectAdapterUseCase().Execute(cmd.Context(), usecases.InspectAdapterInput{
				Kind:           kind,
				GatewayAddress: gatewayFlag,
			})
			if err != nil {
				return err
			}

			fields := logrus.Fields{
				"adapter":         output.AdapterName,
				"enabled":         output.Enabled,
				"gateway_present": output.GatewayPresent,
			}
			if output.LastRecord != nil {
				fields["last_outcome"] = output.LastRecord.Outcome
				fields["last_pass_at"] = output.LastRecord.CompletedAt.Format(time.RFC3339)
			}
			logger.WithFields(fields).Info("Adapter status")

			if !output.Enabled || (gatewayFlag != "" && !output.GatewayPresent) {
				return errAdapterNotReady
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(entities.KindWSL), "network kind (wsl, hyperv)")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", "", "expected gateway address")
	return cmd
}

// watch returns the watch cobra command.
func watch(logger *logrus.Logger) *cobra.Command {
	var kindFlag, gatewayFlag, cidrFlag string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-runs reconciliation on an interval, serving health and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, cfg, err := newContainer(logger)
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			input, err := resolveInput(cfg, kindFlag, gatewayFlag, cidrFlag)
			if err != nil {
				return err
			}

			app := NewApplication(appContainer, logger)
			return app.Run(cmd.Context(), input)
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(entities.KindWSL), "network kind (wsl, hyperv)")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", "", "gateway address (dotted quad)")
	cmd.Flags().StringVar(&cidrFlag, "cidr", "", "network address (CIDR)")
	return cmd
}

// newContainer는 설정을 로드하고 의존성 컨테이너를 생성합니다
func newContainer(logger *logrus.Logger) (*container.Container, *config.Config, error) {
	configLoader := config.NewEnvironmentConfigLoader(adapters.NewRealFileSystem())
	cfg, err := configLoader.Load()
	if err != nil {
		return nil, nil, err
	}

	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return appContainer, cfg, nil
}

func closeContainer(appContainer *container.Container, logger *logrus.Logger) {
	if err := appContainer.Close(); err != nil {
		logger.WithError(err).Error("Failed to cleanup container")
	}
}

// parseKind는 종류 플래그를 NetworkKind로 변환합니다
func parseKind(value string) (entities.NetworkKind, error) {
	kind, err := entities.ParseNetworkKind(value)
	if err != nil {
		return "", domainErrors.NewUnsupportedKindError(
			fmt.Sprintf("지원하지 않는 네트워크 종류: %s", value), err)
	}
	return kind, nil
}

// resolveInput은 플래그와 설정 파일 기본값으로부터 조정 입력을 결정합니다.
// 플래그가 설정 파일보다 우선합니다.
func resolveInput(cfg *config.Config, kindFlag, gatewayFlag, cidrFlag string) (usecases.ReconcileNetworkInput, error) {
	kind, err := parseKind(kindFlag)
	if err != nil {
		return usecases.ReconcileNetworkInput{}, err
	}

	input := usecases.ReconcileNetworkInput{
		Kind:           kind,
		GatewayAddress: gatewayFlag,
		NetworkCIDR:    cidrFlag,
	}

	if defaults, ok := cfg.Networks[string(kind)]; ok {
		if input.GatewayAddress == "" {
			input.GatewayAddress = defaults.Gateway
		}
		if input.NetworkCIDR == "" {
			input.NetworkCIDR = defaults.CIDR
		}
	}

	if input.GatewayAddress == "" || input.NetworkCIDR == "" {
		return usecases.ReconcileNetworkInput{}, domainErrors.NewValidationError(
			"게이트웨이와 CIDR이 플래그 또는 설정 파일에 지정되어야 함", nil)
	}

	return input, nil
}

// Application은 watch 모드의 메인 애플리케이션 구조체입니다
type Application struct {
	container    *container.Container
	logger       *logrus.Logger
	healthServer *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(appContainer *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container: appContainer,
		logger:    logger,
	}
}

// Run은 watch 모드를 실행합니다
func (a *Application) Run(ctx context.Context, input usecases.ReconcileNetworkInput) error {
	cfg := a.container.GetConfig()

	hostname, _ := os.Hostname()
	metrics.SetAgentInfo(version, hostname)

	// 헬스체크 서버 시작
	if err := a.startHealthServer(cfg.Health.Port); err != nil {
		return err
	}
	defer a.shutdown()

	// 컨텍스트 및 시그널 핸들링 설정
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 폴링 전략 설정
	var strategy polling.Strategy
	if cfg.Agent.Backoff.Enabled {
		strategy = polling.NewExponentialBackoffStrategy(
			cfg.Agent.PollInterval,
			cfg.Agent.Backoff.MaxInterval,
			cfg.Agent.Backoff.Multiplier,
			a.logger,
		)
		a.logger.WithFields(logrus.Fields{
			"base_interval": cfg.Agent.PollInterval,
			"max_interval":  cfg.Agent.Backoff.MaxInterval,
			"multiplier":    cfg.Agent.Backoff.Multiplier,
		}).Info("Exponential backoff polling enabled")
	} else {
		strategy = polling.NewFixedIntervalStrategy(cfg.Agent.PollInterval)
		a.logger.WithField("interval", cfg.Agent.PollInterval).Info("Fixed interval polling enabled")
	}

	pollingController := polling.NewPollingController(strategy, a.logger)

	a.logger.WithFields(logrus.Fields{
		"kind":    input.Kind,
		"gateway": input.GatewayAddress,
		"cidr":    input.NetworkCIDR,
	}).Info("detnet agent started")

	// 시그널 처리를 위한 goroutine
	go func() {
		<-sigChan
		a.logger.Info("Received shutdown signal")
		cancel()
	}()

	// 폴링 시작. 각 틱은 독립적인 단일 조정 패스입니다.
	return pollingController.Start(ctx, func(ctx context.Context) error {
		return a.runPass(ctx, input)
	})
}

// runPass는 조정 패스 하나를 실행하고 헬스 상태를 갱신합니다
func (a *Application) runPass(ctx context.Context, input usecases.ReconcileNetworkInput) error {
	healthService := a.container.GetHealthService()

	output, err := a.container.GetReconcileNetworkUseCase().Execute(ctx, input)
	if err != nil {
		a.logger.WithError(err).Error("Failed to reconcile network")

		serviceDown := domainErrors.IsTransportError(err) || domainErrors.IsSystemError(err)
		healthService.UpdateServiceHealth(!serviceDown, err)
		metrics.SetServiceAvailable(!serviceDown)
		healthService.RecordPass(string(entities.OutcomeFailed), true)
		return err
	}

	healthService.UpdateServiceHealth(true, nil)
	metrics.SetServiceAvailable(true)
	healthService.RecordPass(string(output.Outcome), false)
	return nil
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) error {
	healthService := a.container.GetHealthService()

	mux := http.NewServeMux()
	mux.Handle("/", healthService)
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()

	return nil
}

// shutdown은 애플리케이션을 정리하고 종료합니다
func (a *Application) shutdown() {
	if a.healthServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := a.healthServer.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Error("Failed to shutdown health check server")
		}
	}
}
