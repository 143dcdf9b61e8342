// Package hosttest provides recording fakes of the host build scan API for
// tests that drive it through a bridge.
package hosttest

import (
	"context"
	"sync"

	"github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
)

type recorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recorder) record(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[method]++
}

// Calls reports how many times method ran.
func (r *recorder) Calls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

// Extension is a recording scanapi.Extension. Getters return the exported
// fields; setters store into them.
type Extension struct {
	recorder

	ServerValue     string
	ProjectIDValue  string
	AllowUntrusted  bool
	AccessKeyValue  string
	BuildCacheValue string
	Scan            *BuildScan
}

// NewExtension returns an extension with an empty BuildScan.
func NewExtension() *Extension {
	return &Extension{Scan: NewBuildScan()}
}

func (e *Extension) BuildScan() scanapi.BuildScan {
	e.record("BuildScan")
	return e.Scan
}

func (e *Extension) ConfigureBuildScan(action func(scanapi.BuildScan)) {
	e.record("ConfigureBuildScan")
	action(e.Scan)
}

func (e *Extension) Server() string {
	e.record("Server")
	return e.ServerValue
}

func (e *Extension) SetServer(server string) {
	e.record("SetServer")
	e.ServerValue = server
}

func (e *Extension) ProjectID() string {
	e.record("ProjectID")
	return e.ProjectIDValue
}

func (e *Extension) SetProjectID(projectID string) {
	e.record("SetProjectID")
	e.ProjectIDValue = projectID
}

func (e *Extension) AllowUntrustedServer() bool {
	e.record("AllowUntrustedServer")
	return e.AllowUntrusted
}

func (e *Extension) SetAllowUntrustedServer(allow bool) {
	e.record("SetAllowUntrustedServer")
	e.AllowUntrusted = allow
}

func (e *Extension) AccessKey() string {
	e.record("AccessKey")
	return e.AccessKeyValue
}

func (e *Extension) SetAccessKey(accessKey string) {
	e.record("SetAccessKey")
	e.AccessKeyValue = accessKey
}

func (e *Extension) BuildCache() string {
	e.record("BuildCache")
	return e.BuildCacheValue
}

// BuildScan is a recording scanapi.BuildScan. Actions are stored and run by
// the Fire methods.
type BuildScan struct {
	recorder

	Tags               []string
	Values             map[string]string
	Links              map[string]string
	TermsURL           string
	TermsAgree         string
	InBackground       bool
	Mode               scanapi.UploadMode
	Predicate          func(scanapi.PublishingContext) bool
	UsernameObfuscator func(string) string
	CaptureState       Capture
	PublishErr         error

	finished  []func(scanapi.BuildResult)
	published []func(scanapi.PublishedBuildScan)
}

// NewBuildScan returns an empty BuildScan.
func NewBuildScan() *BuildScan {
	return &BuildScan{Values: map[string]string{}, Links: map[string]string{}, Mode: scanapi.Foreground}
}

func (s *BuildScan) Background(action func(scanapi.BuildScan)) {
	s.record("Background")
	action(s)
}

func (s *BuildScan) Tag(tag string) {
	s.record("Tag")
	s.Tags = append(s.Tags, tag)
}

func (s *BuildScan) Value(name, value string) {
	s.record("Value")
	s.Values[name] = value
}

func (s *BuildScan) Link(name, url string) {
	s.record("Link")
	s.Links[name] = url
}

func (s *BuildScan) BuildFinished(action func(scanapi.BuildResult)) {
	s.record("BuildFinished")
	s.finished = append(s.finished, action)
}

func (s *BuildScan) BuildScanPublished(action func(scanapi.PublishedBuildScan)) {
	s.record("BuildScanPublished")
	s.published = append(s.published, action)
}

func (s *BuildScan) TermsOfUseURL() string {
	s.record("TermsOfUseURL")
	return s.TermsURL
}

func (s *BuildScan) SetTermsOfUseURL(url string) {
	s.record("SetTermsOfUseURL")
	s.TermsURL = url
}

func (s *BuildScan) TermsOfUseAgree() string {
	s.record("TermsOfUseAgree")
	return s.TermsAgree
}

func (s *BuildScan) SetTermsOfUseAgree(agree string) {
	s.record("SetTermsOfUseAgree")
	s.TermsAgree = agree
}

func (s *BuildScan) UploadInBackground() bool {
	s.record("UploadInBackground")
	return s.InBackground
}

func (s *BuildScan) SetUploadInBackground(background bool) {
	s.record("SetUploadInBackground")
	s.InBackground = background
}

func (s *BuildScan) UploadMode() scanapi.UploadMode {
	s.record("UploadMode")
	return s.Mode
}

func (s *BuildScan) SetUploadMode(mode scanapi.UploadMode) {
	s.record("SetUploadMode")
	s.Mode = mode
}

func (s *BuildScan) Publishing(action func(scanapi.Publishing)) {
	s.record("Publishing")
	action(publishing{scan: s})
}

func (s *BuildScan) Obfuscation(action func(scanapi.Obfuscation)) {
	s.record("Obfuscation")
	action(obfuscation{scan: s})
}

func (s *BuildScan) Capture(action func(scanapi.Capture)) {
	s.record("Capture")
	action(&s.CaptureState)
}

func (s *BuildScan) Publish(ctx context.Context) (scanapi.PublishedBuildScan, error) {
	s.record("Publish")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.PublishErr != nil {
		return nil, s.PublishErr
	}
	return Published{ID: "abc123", URI: "https://scans.example.com/s/abc123"}, nil
}

// FireBuildFinished runs the stored build-finished actions.
func (s *BuildScan) FireBuildFinished(outcome scanapi.Outcome, failures ...error) {
	for _, action := range s.finished {
		action(Result{OutcomeValue: outcome, FailureList: failures})
	}
}

// FirePublished runs the stored published actions.
func (s *BuildScan) FirePublished(scan Published) {
	for _, action := range s.published {
		action(scan)
	}
}

// Allows evaluates the stored publishing predicate for outcome.
func (s *BuildScan) Allows(outcome scanapi.Outcome) bool {
	if s.Predicate == nil {
		return true
	}
	return s.Predicate(publishingContext{result: Result{OutcomeValue: outcome}})
}

type publishing struct{ scan *BuildScan }

func (p publishing) OnlyIf(predicate func(scanapi.PublishingContext) bool) {
	p.scan.Predicate = predicate
}

type publishingContext struct{ result Result }

func (c publishingContext) BuildResult() scanapi.BuildResult { return c.result }

type obfuscation struct{ scan *BuildScan }

func (o obfuscation) Username(obfuscator func(string) string) { o.scan.UsernameObfuscator = obfuscator }
func (o obfuscation) Hostname(func(string) string)            {}
func (o obfuscation) IPAddresses(func([]string) []string)     {}

// Result is a scanapi.BuildResult.
type Result struct {
	OutcomeValue scanapi.Outcome
	FailureList  []error
}

func (r Result) Outcome() scanapi.Outcome { return r.OutcomeValue }
func (r Result) Failures() []error        { return r.FailureList }

// Published is a scanapi.PublishedBuildScan.
type Published struct {
	ID  string
	URI string
}

func (p Published) BuildScanID() string  { return p.ID }
func (p Published) BuildScanURI() string { return p.URI }

// Capture is a scanapi.Capture.
type Capture struct {
	FileFingerprintsValue bool
	BuildLoggingValue     bool
	TestLoggingValue      bool
}

func (c *Capture) FileFingerprints() bool     { return c.FileFingerprintsValue }
func (c *Capture) SetFileFingerprints(v bool) { c.FileFingerprintsValue = v }
func (c *Capture) BuildLogging() bool         { return c.BuildLoggingValue }
func (c *Capture) SetBuildLogging(v bool)     { c.BuildLoggingValue = v }
func (c *Capture) TestLogging() bool          { return c.TestLoggingValue }
func (c *Capture) SetTestLogging(v bool)      { c.TestLoggingValue = v }

// Wrapper hides a value behind Unwrap the way host plugins decorate their
// extensions.
type Wrapper struct{ inner any }

// Wrap nests v in depth wrappers.
func Wrap(v any, depth int) any {
	for range depth {
		v = &Wrapper{inner: v}
	}
	return v
}

// Unwrap returns the wrapped value.
func (w *Wrapper) Unwrap() any { return w.inner }
