package extension

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
)

// Result describes how a build ended and the identifying data the host would
// capture for it.
type Result struct {
	Outcome     scanapi.Outcome
	Failures    []error
	Username    string
	Hostname    string
	IPAddresses []string
}

// Report is what the host recorded at the end of a build.
type Report struct {
	Outcome            scanapi.Outcome
	ProjectID          string
	Tags               []string
	Values             map[string]string
	Links              map[string]string
	Username           string
	Hostname           string
	IPAddresses        []string
	UploadMode         scanapi.UploadMode
	UploadInBackground bool
	FileFingerprints   bool
	BuildLogging       bool
	TestLogging        bool
	Published          bool
	BuildScanID        string
	BuildScanURI       string
}

// Finish runs the end of a build against ext: background actions, then
// build-finished actions, then the publishing predicate, publication and
// published actions. A panicking plugin action fails Finish with the panic
// as the error.
func Finish(ctx context.Context, ext scanapi.Extension, result Result) (Report, error) {
	e, err := unwrapHost(ext)
	if err != nil {
		return Report{}, err
	}
	s := e.scan

	s.mu.Lock()
	background := slices.Clone(s.background)
	s.mu.Unlock()
	for _, action := range background {
		if err := runAction("background action", func() { action(s) }); err != nil {
			return Report{}, err
		}
	}

	s.mu.Lock()
	finished := slices.Clone(s.finished)
	published := slices.Clone(s.published)
	s.mu.Unlock()

	br := &buildResult{outcome: result.Outcome, failures: result.Failures}
	for _, action := range finished {
		if err := runAction("build finished action", func() { action(br) }); err != nil {
			return Report{}, err
		}
	}

	report, err := s.report(e, result)
	if err != nil {
		return Report{}, err
	}

	var allowed bool
	if err := runAction("publishing predicate", func() { allowed = s.publishing.allows(br) }); err != nil {
		return report, err
	}
	if !allowed {
		return report, nil
	}
	scan, err := s.Publish(ctx)
	if err != nil {
		return report, err
	}
	report.Published = true
	report.BuildScanID = scan.BuildScanID()
	report.BuildScanURI = scan.BuildScanURI()
	for _, action := range published {
		if err := runAction("build scan published action", func() { action(scan) }); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *buildScan) report(e *extension, result Result) (report Report, err error) {
	s.mu.Lock()
	report = Report{
		Outcome:            result.Outcome,
		ProjectID:          e.ProjectID(),
		Tags:               slices.Clone(s.tags),
		Values:             pairMap(s.values),
		Links:              pairMap(s.links),
		UploadMode:         s.mode,
		UploadInBackground: s.inBackground,
	}
	s.mu.Unlock()

	report.FileFingerprints = s.capture.FileFingerprints()
	report.BuildLogging = s.capture.BuildLogging()
	report.TestLogging = s.capture.TestLogging()

	s.obfuscation.mu.Lock()
	username, hostname, ips := s.obfuscation.username, s.obfuscation.hostname, s.obfuscation.ips
	s.obfuscation.mu.Unlock()

	report.Username, report.Hostname = result.Username, result.Hostname
	report.IPAddresses = slices.Clone(result.IPAddresses)
	err = runAction("obfuscation", func() {
		if username != nil {
			report.Username = username(report.Username)
		}
		if hostname != nil {
			report.Hostname = hostname(report.Hostname)
		}
		if ips != nil {
			report.IPAddresses = ips(report.IPAddresses)
		}
	})
	return report, err
}

func pairMap(pairs []pair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Name] = p.Value
	}
	return m
}

func runAction(name string, fn func()) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if e, ok := recovered.(error); ok {
			err = fmt.Errorf("%s: %w", name, e)
			return
		}
		err = fmt.Errorf("%s: %v", name, recovered)
	}()
	fn()
	return nil
}

func scanID(projectID string, seq int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return fmt.Sprintf("%08x%04d", h.Sum32(), seq)
}
