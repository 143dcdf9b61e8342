package adapter

import (
	"context"

	"github.com/louisbranch/realmbridge/internal/scan/plugin/scanapi"
)

// BuildResult is a finished build as seen by plugin callbacks.
type BuildResult struct {
	Outcome  scanapi.Outcome
	Failures []error
}

// PublishedBuildScan identifies a published scan.
type PublishedBuildScan struct {
	ID  string
	URI string
}

// BuildScanAdapter configures the scan published at the end of a build.
type BuildScanAdapter struct {
	scan scanapi.BuildScan
}

// Background runs action off the build's critical path.
func (s *BuildScanAdapter) Background(action func(*BuildScanAdapter)) {
	s.scan.Background(func(scan scanapi.BuildScan) {
		action(&BuildScanAdapter{scan: scan})
	})
}

func (s *BuildScanAdapter) Tag(tag string) { s.scan.Tag(tag) }

func (s *BuildScanAdapter) Value(name, value string) { s.scan.Value(name, value) }

func (s *BuildScanAdapter) Link(name, url string) { s.scan.Link(name, url) }

// BuildFinished registers action to run once the build outcome is known.
func (s *BuildScanAdapter) BuildFinished(action func(BuildResult)) {
	s.scan.BuildFinished(func(result scanapi.BuildResult) {
		action(buildResult(result))
	})
}

// BuildScanPublished registers action to run after the scan is published.
func (s *BuildScanAdapter) BuildScanPublished(action func(PublishedBuildScan)) {
	s.scan.BuildScanPublished(func(scan scanapi.PublishedBuildScan) {
		action(publishedBuildScan(scan))
	})
}

func (s *BuildScanAdapter) TermsOfUseURL() string { return s.scan.TermsOfUseURL() }

func (s *BuildScanAdapter) SetTermsOfUseURL(url string) { s.scan.SetTermsOfUseURL(url) }

func (s *BuildScanAdapter) TermsOfUseAgree() string { return s.scan.TermsOfUseAgree() }

func (s *BuildScanAdapter) SetTermsOfUseAgree(agree string) { s.scan.SetTermsOfUseAgree(agree) }

func (s *BuildScanAdapter) UploadInBackground() bool { return s.scan.UploadInBackground() }

func (s *BuildScanAdapter) SetUploadInBackground(background bool) {
	s.scan.SetUploadInBackground(background)
}

// UploadMode returns the host's upload mode. A mode the plugin API does not
// declare panics with a TYPE_LOAD bridge error.
func (s *BuildScanAdapter) UploadMode() scanapi.UploadMode { return s.scan.UploadMode() }

func (s *BuildScanAdapter) SetUploadMode(mode scanapi.UploadMode) { s.scan.SetUploadMode(mode) }

// PublishOnlyIf publishes the scan only when predicate accepts the build
// result.
func (s *BuildScanAdapter) PublishOnlyIf(predicate func(BuildResult) bool) {
	s.scan.Publishing(func(publishing scanapi.Publishing) {
		publishing.OnlyIf(func(ctx scanapi.PublishingContext) bool {
			return predicate(buildResult(ctx.BuildResult()))
		})
	})
}

func (s *BuildScanAdapter) ObfuscateUsername(obfuscator func(string) string) {
	s.scan.Obfuscation(func(o scanapi.Obfuscation) { o.Username(obfuscator) })
}

func (s *BuildScanAdapter) ObfuscateHostname(obfuscator func(string) string) {
	s.scan.Obfuscation(func(o scanapi.Obfuscation) { o.Hostname(obfuscator) })
}

func (s *BuildScanAdapter) ObfuscateIPAddresses(obfuscator func([]string) []string) {
	s.scan.Obfuscation(func(o scanapi.Obfuscation) { o.IPAddresses(obfuscator) })
}

// Capture runs action against the capture settings.
func (s *BuildScanAdapter) Capture(action func(scanapi.Capture)) {
	s.scan.Capture(action)
}

// Publish uploads the scan now. Errors returned by the host pass through
// unchanged.
func (s *BuildScanAdapter) Publish(ctx context.Context) (PublishedBuildScan, error) {
	scan, err := s.scan.Publish(ctx)
	if err != nil {
		return PublishedBuildScan{}, err
	}
	return publishedBuildScan(scan), nil
}

func buildResult(r scanapi.BuildResult) BuildResult {
	return BuildResult{Outcome: r.Outcome(), Failures: r.Failures()}
}

func publishedBuildScan(scan scanapi.PublishedBuildScan) PublishedBuildScan {
	if scan == nil {
		return PublishedBuildScan{}
	}
	return PublishedBuildScan{ID: scan.BuildScanID(), URI: scan.BuildScanURI()}
}
