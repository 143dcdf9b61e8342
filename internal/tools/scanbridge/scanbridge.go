// Package scanbridge configures the host build scan extension through the
// plugin's adapter and runs a simulated end of build against it.
package scanbridge

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/louisbranch/realmbridge/internal/bridge"
	"github.com/louisbranch/realmbridge/internal/platform/cmd"
	"github.com/louisbranch/realmbridge/internal/scan"
	"github.com/louisbranch/realmbridge/internal/scan/adapter"
	"github.com/louisbranch/realmbridge/internal/scan/host/extension"
	hostapi "github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
	"github.com/louisbranch/realmbridge/internal/scan/plugin/scanapi"
)

const redacted = "<redacted>"

// Config holds scanbridge settings.
type Config struct {
	Server               string        `env:"SCANBRIDGE_SERVER"`
	ProjectID            string        `env:"SCANBRIDGE_PROJECT_ID"`
	AccessKey            string        `env:"SCANBRIDGE_ACCESS_KEY"`
	AllowUntrusted       bool          `env:"SCANBRIDGE_ALLOW_UNTRUSTED"`
	BuildCache           string        `env:"SCANBRIDGE_BUILD_CACHE"`
	TermsURL             string        `env:"SCANBRIDGE_TERMS_URL"`
	TermsAgree           string        `env:"SCANBRIDGE_TERMS_AGREE"`
	Tags                 []string      `env:"SCANBRIDGE_TAGS" envSeparator:","`
	Outcome              string        `env:"SCANBRIDGE_OUTCOME" envDefault:"SUCCESS"`
	Failures             []string      `env:"SCANBRIDGE_FAILURES" envSeparator:","`
	UploadMode           string        `env:"SCANBRIDGE_UPLOAD_MODE" envDefault:"FOREGROUND"`
	UploadInBackground   bool          `env:"SCANBRIDGE_UPLOAD_IN_BACKGROUND"`
	PublishOnFailureOnly bool          `env:"SCANBRIDGE_PUBLISH_ON_FAILURE_ONLY"`
	Username             string        `env:"SCANBRIDGE_USERNAME"`
	Hostname             string        `env:"SCANBRIDGE_HOSTNAME"`
	ObfuscateIdentity    bool          `env:"SCANBRIDGE_OBFUSCATE_IDENTITY"`
	Timeout              time.Duration `env:"SCANBRIDGE_TIMEOUT" envDefault:"30s"`
}

// ParseConfig reads env defaults and then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Server, "server", cfg.Server, "build scan server URL")
	fs.StringVar(&cfg.ProjectID, "project-id", cfg.ProjectID, "project identifier")
	fs.StringVar(&cfg.AccessKey, "access-key", cfg.AccessKey, "server access key")
	fs.BoolVar(&cfg.AllowUntrusted, "allow-untrusted", cfg.AllowUntrusted, "allow a plain http server")
	fs.StringVar(&cfg.BuildCache, "build-cache", cfg.BuildCache, "remote build cache type reported by the host")
	fs.StringVar(&cfg.TermsURL, "terms-url", cfg.TermsURL, "terms of use URL")
	fs.StringVar(&cfg.TermsAgree, "terms-agree", cfg.TermsAgree, "terms of use agreement (yes to agree)")
	fs.Func("tag", "scan tag; may be repeated", func(tag string) error {
		cfg.Tags = append(cfg.Tags, tag)
		return nil
	})
	fs.StringVar(&cfg.Outcome, "outcome", cfg.Outcome, "simulated build outcome: SUCCESS, FAILURE or ABORTED")
	fs.Func("failure", "simulated build failure; may be repeated", func(msg string) error {
		cfg.Failures = append(cfg.Failures, msg)
		return nil
	})
	fs.StringVar(&cfg.UploadMode, "upload-mode", cfg.UploadMode, "upload mode: FOREGROUND or BACKGROUND")
	fs.BoolVar(&cfg.UploadInBackground, "upload-in-background", cfg.UploadInBackground, "upload after the build returns")
	fs.BoolVar(&cfg.PublishOnFailureOnly, "publish-on-failure-only", cfg.PublishOnFailureOnly, "publish only failed builds")
	fs.StringVar(&cfg.Username, "username", cfg.Username, "username captured by the host")
	fs.StringVar(&cfg.Hostname, "hostname", cfg.Hostname, "hostname captured by the host")
	fs.BoolVar(&cfg.ObfuscateIdentity, "obfuscate-identity", cfg.ObfuscateIdentity, "redact username and hostname")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the host extension, configures it through a bridged adapter and
// prints what the host recorded at the end of the simulated build.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	outcome, err := parseOutcome(cfg.Outcome)
	if err != nil {
		return err
	}
	mode, err := parseUploadMode(cfg.UploadMode)
	if err != nil {
		return err
	}

	b, err := scan.NewBridge(bridge.WithLogger(log.New(errOut, "", 0)))
	if err != nil {
		return fmt.Errorf("build bridge: %w", err)
	}
	host := extension.New(cfg.BuildCache)
	ext, err := adapter.NewExtensionAdapter(b, extension.WithHiddenFeatures(host))
	if err != nil {
		return err
	}
	if err := configure(ext, cfg, mode, out); err != nil {
		return fmt.Errorf("configure build scan: %w", err)
	}

	failures := make([]error, 0, len(cfg.Failures))
	for _, msg := range cfg.Failures {
		failures = append(failures, errors.New(msg))
	}
	report, err := extension.Finish(ctx, host, extension.Result{
		Outcome:  outcome,
		Failures: failures,
		Username: cfg.Username,
		Hostname: cfg.Hostname,
	})
	if err != nil {
		return fmt.Errorf("finish build: %w", err)
	}
	printReport(out, report)
	return nil
}

// configure applies cfg through the adapter. Bridge failures surface as
// panics from adapter calls and are returned as errors.
func configure(ext *adapter.ExtensionAdapter, cfg Config, mode scanapi.UploadMode, out io.Writer) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		e, ok := recovered.(error)
		if !ok {
			panic(recovered)
		}
		err = e
	}()

	if cfg.Server != "" {
		ext.SetServer(cfg.Server)
	}
	if cfg.ProjectID != "" {
		ext.SetProjectID(cfg.ProjectID)
	}
	if cfg.AccessKey != "" {
		ext.SetAccessKey(cfg.AccessKey)
	}
	ext.SetAllowUntrustedServer(cfg.AllowUntrusted)
	buildCache := ext.BuildCache()

	ext.ConfigureBuildScan(func(s *adapter.BuildScanAdapter) {
		if cfg.TermsURL != "" {
			s.SetTermsOfUseURL(cfg.TermsURL)
		}
		if cfg.TermsAgree != "" {
			s.SetTermsOfUseAgree(cfg.TermsAgree)
		}
		s.SetUploadMode(mode)
		s.SetUploadInBackground(cfg.UploadInBackground)
		for _, tag := range cfg.Tags {
			s.Tag(tag)
		}
		if buildCache != "" {
			s.Background(func(s *adapter.BuildScanAdapter) {
				s.Value("Build cache", buildCache)
			})
		}
		if cfg.ObfuscateIdentity {
			s.ObfuscateUsername(func(string) string { return redacted })
			s.ObfuscateHostname(func(string) string { return redacted })
		}
		if cfg.PublishOnFailureOnly {
			s.PublishOnlyIf(func(r adapter.BuildResult) bool {
				return r.Outcome == scanapi.Failure
			})
		}
		s.BuildFinished(func(r adapter.BuildResult) {
			fmt.Fprintf(out, "build finished: %s (%d failures)\n", r.Outcome, len(r.Failures))
		})
		s.BuildScanPublished(func(p adapter.PublishedBuildScan) {
			fmt.Fprintf(out, "published build scan %s\n", p.URI)
		})
	})
	return nil
}

func parseOutcome(s string) (hostapi.Outcome, error) {
	for _, o := range []hostapi.Outcome{hostapi.Success, hostapi.Failure, hostapi.Aborted} {
		if strings.EqualFold(s, o.String()) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

func parseUploadMode(s string) (scanapi.UploadMode, error) {
	for _, m := range []scanapi.UploadMode{scanapi.Foreground, scanapi.Background} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown upload mode %q", s)
}

func printReport(out io.Writer, r extension.Report) {
	fmt.Fprintf(out, "outcome: %s\n", r.Outcome)
	fmt.Fprintf(out, "project: %s\n", r.ProjectID)
	fmt.Fprintf(out, "tags: %s\n", strings.Join(r.Tags, ", "))
	for _, name := range slices.Sorted(maps.Keys(r.Values)) {
		fmt.Fprintf(out, "value: %s=%s\n", name, r.Values[name])
	}
	fmt.Fprintf(out, "user: %s@%s\n", r.Username, r.Hostname)
	fmt.Fprintf(out, "upload: %s (background %t)\n", r.UploadMode, r.UploadInBackground)
	fmt.Fprintf(out, "capture: fingerprints %t, build logging %t, test logging %t\n",
		r.FileFingerprints, r.BuildLogging, r.TestLogging)
	if r.Published {
		fmt.Fprintf(out, "build scan: %s\n", r.BuildScanID)
	} else {
		fmt.Fprintln(out, "build scan: not published")
	}
}
