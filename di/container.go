package di

import (
	"fmt"

	"picset/config"
	"picset/driver/record_db"
	"picset/gateway/record_gateway"
	"picset/gateway/storage_gateway"
	"picset/port/record_port"
	"picset/port/storage_port"
	"picset/utils/imgproxy"
)

// ApplicationComponents wires the configured storage backend, URL signer,
// and record engine. Collection managers are built per declared collection
// on top of these.
type ApplicationComponents struct {
	Config  *config.Config
	Storage storage_port.ImageStorage
	Signer  *imgproxy.Signer
	Engine  record_port.RecordEngine
}

// NewApplicationComponents assembles the components from explicit
// configuration. A nil pool selects the in-memory record engine.
func NewApplicationComponents(cfg *config.Config, pool record_db.DBPool) (*ApplicationComponents, error) {
	signer, err := imgproxy.NewSigner(cfg.Proxy.Scheme, cfg.Proxy.Host, cfg.Proxy.SigningKey, cfg.Proxy.SigningSalt)
	if err != nil {
		return nil, fmt.Errorf("build url signer: %w", err)
	}

	storage, err := newStorageGateway(cfg)
	if err != nil {
		return nil, err
	}

	var engine record_port.RecordEngine
	if pool != nil {
		engine = record_gateway.NewPgRecordEngine(record_db.NewRecordDBRepository(pool))
	} else {
		engine = record_gateway.NewMemoryRecordEngine()
	}

	return &ApplicationComponents{
		Config:  cfg,
		Storage: storage,
		Signer:  signer,
		Engine:  engine,
	}, nil
}

func newStorageGateway(cfg *config.Config) (storage_port.ImageStorage, error) {
	switch cfg.Storage.Backend {
	case config.BackendS3:
		client, err := storage_gateway.NewS3Client(cfg.Storage.S3Endpoint, cfg.Storage.S3AccessKey, cfg.Storage.S3SecretKey, cfg.Storage.S3UseSSL)
		if err != nil {
			return nil, err
		}
		return storage_gateway.NewS3Gateway(client, cfg.Storage.S3Bucket), nil
	case config.BackendFilesystem:
		return storage_gateway.NewFilesystemGateway(cfg.Storage.FilesystemRoot, cfg.App.Env), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
