package api

import (
	"errors"
	"time"
)

// APIConfig represent the configuration for the entire build state application
type APIConfig struct {
	APIServer *APIServerConfig `yaml:"apiServer,omitempty"`
	Database  *DatabaseConfig  `yaml:"database,omitempty"`
	Queue     *QueueConfig     `yaml:"queue,omitempty"`
	Executor  *ExecutorConfig  `yaml:"executor,omitempty"`
	BuildLog  *BuildLogConfig  `yaml:"buildLog,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.APIServer == nil {
		c.APIServer = &APIServerConfig{}
	}
	c.APIServer.SetDefaults()

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	c.Database.SetDefaults()

	if c.Queue == nil {
		c.Queue = &QueueConfig{}
	}
	c.Queue.SetDefaults()

	if c.Executor == nil {
		c.Executor = &ExecutorConfig{}
	}
	c.Executor.SetDefaults()

	if c.BuildLog == nil {
		c.BuildLog = &BuildLogConfig{}
	}
	c.BuildLog.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.APIServer.Validate()
	if err != nil {
		return
	}

	err = c.Database.Validate()
	if err != nil {
		return
	}

	err = c.Queue.Validate()
	if err != nil {
		return
	}

	err = c.Executor.Validate()
	if err != nil {
		return
	}

	err = c.BuildLog.Validate()
	if err != nil {
		return
	}

	return nil
}

// APIServerConfig represents configuration for the http server serving build snapshots
type APIServerConfig struct {
	BaseURL       string `yaml:"baseURL"`
	ListenAddress string `yaml:"listenAddress"`
}

func (c *APIServerConfig) SetDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = ":5000"
	}
}

func (c *APIServerConfig) Validate() (err error) {
	if c.ListenAddress == "" {
		return errors.New("Configuration item 'apiServer.listenAddress' is required; please set it to the address the api listens on")
	}
	return nil
}

// DatabaseConfig contains config for the cockroachdb connection holding the build documents
type DatabaseConfig struct {
	DatabaseName             string `yaml:"databaseName"`
	Host                     string `yaml:"host"`
	Insecure                 bool   `yaml:"insecure"`
	SslMode                  string `yaml:"sslMode"`
	CertificateAuthorityPath string `yaml:"certificateAuthorityPath"`
	CertificatePath          string `yaml:"certificatePath"`
	CertificateKeyPath       string `yaml:"certificateKeyPath"`
	Port                     int    `yaml:"port"`
	User                     string `yaml:"user"`
	Password                 string `yaml:"password"`
	MaxOpenConns             int    `yaml:"maxOpenConnections"`
	MaxIdleConns             int    `yaml:"maxIdleConnections"`
	ConnMaxLifetimeMinutes   int    `yaml:"connectionMaxLifetimeMinutes"`
	BuildsCollection         string `yaml:"buildsCollection"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.DatabaseName == "" {
		c.DatabaseName = "defaultdb"
	}
	if c.Host == "" {
		c.Host = "estafette-ci-db-public"
	}
	if c.SslMode == "" {
		c.SslMode = "verify-full"
	}
	if c.CertificateAuthorityPath == "" {
		c.CertificateAuthorityPath = "/cockroach-certs/ca.crt"
	}
	if c.CertificatePath == "" {
		c.CertificatePath = "/cockroach-certs/tls.crt"
	}
	if c.CertificateKeyPath == "" {
		c.CertificateKeyPath = "/cockroach-certs/tls.key"
	}
	if c.Port <= 0 {
		c.Port = 26257
	}
	if c.User == "" {
		c.User = "root"
	}
	if c.MaxOpenConns < 0 {
		c.MaxOpenConns = 0
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetimeMinutes < 0 {
		c.ConnMaxLifetimeMinutes = 0
	}
	if c.BuildsCollection == "" {
		c.BuildsCollection = "builds"
	}
}

func (c *DatabaseConfig) Validate() (err error) {
	if c.DatabaseName == "" {
		return errors.New("Configuration item 'database.databaseName' is required; please set it to name of the database used by the api")
	}
	if c.Host == "" {
		return errors.New("Configuration item 'database.host' is required; please set it to hostname of the database server")
	}
	if !c.Insecure {
		if c.SslMode == "" {
			return errors.New("Configuration item 'database.sslMode' is required; please set it to the ssl mode used to connect to the database")
		}
		if c.CertificateAuthorityPath == "" {
			return errors.New("Configuration item 'database.certificateAuthorityPath' is required; please set it to the path of the ca certificate")
		}
		if c.CertificatePath == "" {
			return errors.New("Configuration item 'database.certificatePath' is required; please set it to the path of the client certificate")
		}
		if c.CertificateKeyPath == "" {
			return errors.New("Configuration item 'database.certificateKeyPath' is required; please set it to the path of the client certificate key")
		}
	}
	if c.Port <= 0 {
		return errors.New("Configuration item 'database.port' is required; please set it to port of the database server")
	}
	if c.User == "" {
		return errors.New("Configuration item 'database.user' is required; please set it to the user used to connect to the database")
	}
	if c.BuildsCollection == "" {
		return errors.New("Configuration item 'database.buildsCollection' is required; please set it to the collection build documents are stored in")
	}
	return nil
}

// QueueConfig configures the nats queue build change events are published to
type QueueConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Hosts        []string `yaml:"hosts"`
	SubjectBuild string   `yaml:"subjectBuild"`
}

func (c *QueueConfig) SetDefaults() {
	if len(c.Hosts) == 0 {
		c.Hosts = []string{"estafette-ci-queue-0.estafette-ci-queue"}
	}
	if c.SubjectBuild == "" {
		c.SubjectBuild = "event.build"
	}
}

func (c *QueueConfig) Validate() (err error) {
	if !c.Enabled {
		return nil
	}
	if len(c.Hosts) == 0 {
		return errors.New("Configuration item 'queue.hosts' is required; please set it to name of the queue hosts used by the api")
	}
	if c.SubjectBuild == "" {
		return errors.New("Configuration item 'queue.subjectBuild' is required; please set it to subject of the queue for build events")
	}
	return nil
}

// ExecutorConfig configures the ssh executor running build actions on nodes
type ExecutorConfig struct {
	User               string `yaml:"user"`
	Port               int    `yaml:"port"`
	DialTimeoutSeconds int    `yaml:"dialTimeoutSeconds"`
	KnownHostsPath     string `yaml:"knownHostsPath"`
}

func (c *ExecutorConfig) SetDefaults() {
	if c.User == "" {
		c.User = "ubuntu"
	}
	if c.Port <= 0 {
		c.Port = 22
	}
	if c.DialTimeoutSeconds <= 0 {
		c.DialTimeoutSeconds = 30
	}
}

func (c *ExecutorConfig) Validate() (err error) {
	if c.User == "" {
		return errors.New("Configuration item 'executor.user' is required; please set it to the default ssh user for nodes")
	}
	if c.Port <= 0 {
		return errors.New("Configuration item 'executor.port' is required; please set it to the default ssh port for nodes")
	}
	return nil
}

// DialTimeout returns the ssh dial timeout as duration
func (c *ExecutorConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSeconds) * time.Second
}

// BuildLogConfig configures the naming of per-build log channels
type BuildLogConfig struct {
	Namespace string `yaml:"namespace"`
}

func (c *BuildLogConfig) SetDefaults() {
	if c.Namespace == "" {
		c.Namespace = "estafette.build"
	}
}

func (c *BuildLogConfig) Validate() (err error) {
	if c.Namespace == "" {
		return errors.New("Configuration item 'buildLog.namespace' is required; please set it to the prefix of build log channel names")
	}
	return nil
}
