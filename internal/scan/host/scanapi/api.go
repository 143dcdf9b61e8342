// Package scanapi is the host's copy of the build scan extension API. It
// declares its enum constants in a different order than the plugin copy and
// has constants the plugin has never seen.
package scanapi

//go:generate go run github.com/louisbranch/realmbridge/cmd/bridgegen -pattern .

import "context"

// Extension is the root configuration object of the build scan plugin.
type Extension interface {
	BuildScan() BuildScan
	ConfigureBuildScan(action func(BuildScan))
	Server() string
	SetServer(server string)
	ProjectID() string
	SetProjectID(projectID string)
	AllowUntrustedServer() bool
	SetAllowUntrustedServer(allow bool)
	AccessKey() string
	SetAccessKey(accessKey string)
	// BuildCache names the remote build cache type, or "" when none is
	// configured.
	BuildCache() string
}

// BuildScan configures the scan published at the end of a build.
type BuildScan interface {
	Background(action func(BuildScan))
	Tag(tag string)
	Value(name, value string)
	Link(name, url string)
	BuildFinished(action func(BuildResult))
	BuildScanPublished(action func(PublishedBuildScan))
	TermsOfUseURL() string
	SetTermsOfUseURL(url string)
	TermsOfUseAgree() string
	SetTermsOfUseAgree(agree string)
	UploadInBackground() bool
	SetUploadInBackground(background bool)
	UploadMode() UploadMode
	SetUploadMode(mode UploadMode)
	Publishing(action func(Publishing))
	Obfuscation(action func(Obfuscation))
	Capture(action func(Capture))
	Publish(ctx context.Context) (PublishedBuildScan, error)
}

// Publishing decides whether a scan is published.
type Publishing interface {
	OnlyIf(predicate func(PublishingContext) bool)
}

// PublishingContext is handed to publishing predicates.
type PublishingContext interface {
	BuildResult() BuildResult
}

// BuildResult describes a finished build.
type BuildResult interface {
	Outcome() Outcome
	Failures() []error
}

// PublishedBuildScan identifies a published scan.
type PublishedBuildScan interface {
	BuildScanID() string
	BuildScanURI() string
}

// Obfuscation rewrites identifying data before it is captured.
type Obfuscation interface {
	Username(obfuscator func(string) string)
	Hostname(obfuscator func(string) string)
	IPAddresses(obfuscator func([]string) []string)
}

// Capture toggles optional data capture.
type Capture interface {
	FileFingerprints() bool
	SetFileFingerprints(capture bool)
	BuildLogging() bool
	SetBuildLogging(capture bool)
	TestLogging() bool
	SetTestLogging(capture bool)
}

// Outcome is the result of a build.
type Outcome int

const (
	Failure Outcome = iota
	Success
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Aborted:
		return "ABORTED"
	}
	return "UNKNOWN"
}

// UploadMode selects when scan data is uploaded.
type UploadMode string

const (
	Background UploadMode = "BACKGROUND"
	Foreground UploadMode = "FOREGROUND"
	Offline    UploadMode = "OFFLINE"
)
