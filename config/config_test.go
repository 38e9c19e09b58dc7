package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/feed-dashboard/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Address: ":8080", Environment: config.EnvDev},
		Feed:    config.FeedConfig{URL: "http://localhost:5000/api/tweets", Timeout: "0s"},
		Poll:    config.PollConfig{Interval: "5s", DiscardStale: true},
		Metrics: config.MetricsConfig{BufferSize: 100},
		Logging: config.LoggingConfig{Level: config.LogLevelInfo},
	}
}

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tempDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("FEED_URL")
		os.Unsetenv("POLL_INTERVAL")
	})

	Describe("Load", func() {
		Context("with valid config file", func() {
			BeforeEach(func() {
				configContent := `
server:
  address: ":9090"
  environment: "prod"

feed:
  url: "https://feed.example.com/api/tweets"
  timeout: "3s"

poll:
  interval: "10s"
  discard_stale: false

logging:
  level: "debug"
`
				err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
			})

			It("should parse feed settings", func() {
				cfg, _ := config.Load()
				Expect(cfg.Feed.URL).To(Equal("https://feed.example.com/api/tweets"))
				Expect(cfg.FeedTimeout()).To(Equal(3 * time.Second))
			})

			It("should parse poll settings", func() {
				cfg, _ := config.Load()
				Expect(cfg.PollInterval()).To(Equal(10 * time.Second))
				Expect(cfg.Poll.DiscardStale).To(BeFalse())
			})

			It("should keep defaults for omitted sections", func() {
				cfg, _ := config.Load()
				Expect(cfg.Metrics.BufferSize).To(Equal(100))
			})
		})

		Context("without config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal(":8080"))
				Expect(cfg.Feed.URL).To(Equal("http://localhost:5000/api/tweets"))
				Expect(cfg.PollInterval()).To(Equal(5 * time.Second))
				Expect(cfg.FeedTimeout()).To(BeZero())
				Expect(cfg.Poll.DiscardStale).To(BeTrue())
			})

			It("should apply environment overrides", func() {
				os.Setenv("FEED_URL", "http://api.internal:7000/api/tweets")
				os.Setenv("POLL_INTERVAL", "2s")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Feed.URL).To(Equal("http://api.internal:7000/api/tweets"))
				Expect(cfg.PollInterval()).To(Equal(2 * time.Second))
			})

			It("should reject an invalid environment override", func() {
				os.Setenv("FEED_URL", "ftp://example.com/feed")

				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})

		Context("with an explicit search path", func() {
			It("should read config.yaml from that directory", func() {
				dir := filepath.Join(tempDir, "custom")
				Expect(os.Mkdir(dir, 0755)).To(Succeed())
				err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("poll:\n  interval: \"1m\"\n"), 0644)
				Expect(err).NotTo(HaveOccurred())

				cfg, err := config.Load(dir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.PollInterval()).To(Equal(time.Minute))
			})
		})

		Context("with malformed config file", func() {
			It("should return an error", func() {
				err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("feed: [unclosed"), 0644)
				Expect(err).NotTo(HaveOccurred())

				_, err = config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		It("should accept a complete config", func() {
			Expect(validConfig().Validate()).To(Succeed())
		})

		DescribeTable("rejects invalid values",
			func(mutate func(*config.Config)) {
				cfg := validConfig()
				mutate(cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("unknown environment", func(c *config.Config) { c.Server.Environment = "qa" }),
			Entry("address without port", func(c *config.Config) { c.Server.Address = "localhost" }),
			Entry("relative feed URL", func(c *config.Config) { c.Feed.URL = "/api/tweets" }),
			Entry("feed URL without host", func(c *config.Config) { c.Feed.URL = "http:///api/tweets" }),
			Entry("unparseable timeout", func(c *config.Config) { c.Feed.Timeout = "soon" }),
			Entry("negative timeout", func(c *config.Config) { c.Feed.Timeout = "-1s" }),
			Entry("zero poll interval", func(c *config.Config) { c.Poll.Interval = "0s" }),
			Entry("empty poll interval", func(c *config.Config) { c.Poll.Interval = "" }),
			Entry("zero metrics buffer", func(c *config.Config) { c.Metrics.BufferSize = 0 }),
			Entry("unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }),
		)
	})
})
