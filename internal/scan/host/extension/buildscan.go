package extension

import (
	"context"
	"sync"

	"github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
)

type buildScan struct {
	ext *extension

	mu           sync.Mutex
	background   []func(scanapi.BuildScan)
	tags         []string
	values       []pair
	links        []pair
	finished     []func(scanapi.BuildResult)
	published    []func(scanapi.PublishedBuildScan)
	termsURL     string
	termsAgree   string
	inBackground bool
	mode         scanapi.UploadMode
	publishing   publishing
	obfuscation  obfuscation
	capture      capture
	seq          int
}

type pair struct {
	Name  string
	Value string
}

func newBuildScan(ext *extension) *buildScan {
	return &buildScan{
		ext:     ext,
		mode:    scanapi.Foreground,
		capture: capture{fileFingerprints: true, buildLogging: true, testLogging: true},
	}
}

func (s *buildScan) Background(action func(scanapi.BuildScan)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = append(s.background, action)
}

func (s *buildScan) Tag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append(s.tags, tag)
}

func (s *buildScan) Value(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, pair{Name: name, Value: value})
}

func (s *buildScan) Link(name, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, pair{Name: name, Value: url})
}

func (s *buildScan) BuildFinished(action func(scanapi.BuildResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = append(s.finished, action)
}

func (s *buildScan) BuildScanPublished(action func(scanapi.PublishedBuildScan)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, action)
}

func (s *buildScan) TermsOfUseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.termsURL
}

func (s *buildScan) SetTermsOfUseURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.termsURL = url
}

func (s *buildScan) TermsOfUseAgree() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.termsAgree
}

func (s *buildScan) SetTermsOfUseAgree(agree string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.termsAgree = agree
}

func (s *buildScan) UploadInBackground() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inBackground
}

func (s *buildScan) SetUploadInBackground(background bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inBackground = background
}

func (s *buildScan) UploadMode() scanapi.UploadMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *buildScan) SetUploadMode(mode scanapi.UploadMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *buildScan) Publishing(action func(scanapi.Publishing)) {
	action(&s.publishing)
}

func (s *buildScan) Obfuscation(action func(scanapi.Obfuscation)) {
	action(&s.obfuscation)
}

func (s *buildScan) Capture(action func(scanapi.Capture)) {
	action(&s.capture)
}

// Publish uploads the scan as configured so far.
func (s *buildScan) Publish(ctx context.Context) (scanapi.PublishedBuildScan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	server, err := s.ext.endpoint()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if server == DefaultServer && s.termsAgree != "yes" {
		return nil, ErrTermsNotAccepted
	}
	s.seq++
	id := scanID(s.ext.ProjectID(), s.seq)
	return &publishedBuildScan{id: id, uri: server + "/s/" + id}, nil
}

type publishing struct {
	mu        sync.Mutex
	predicate func(scanapi.PublishingContext) bool
}

func (p *publishing) OnlyIf(predicate func(scanapi.PublishingContext) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.predicate = predicate
}

func (p *publishing) allows(result *buildResult) bool {
	p.mu.Lock()
	predicate := p.predicate
	p.mu.Unlock()
	if predicate == nil {
		return true
	}
	return predicate(&publishingContext{result: result})
}

type publishingContext struct {
	result *buildResult
}

func (c *publishingContext) BuildResult() scanapi.BuildResult { return c.result }

type buildResult struct {
	outcome  scanapi.Outcome
	failures []error
}

func (r *buildResult) Outcome() scanapi.Outcome { return r.outcome }
func (r *buildResult) Failures() []error        { return r.failures }

type publishedBuildScan struct {
	id  string
	uri string
}

func (p *publishedBuildScan) BuildScanID() string  { return p.id }
func (p *publishedBuildScan) BuildScanURI() string { return p.uri }

type obfuscation struct {
	mu       sync.Mutex
	username func(string) string
	hostname func(string) string
	ips      func([]string) []string
}

func (o *obfuscation) Username(obfuscator func(string) string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.username = obfuscator
}

func (o *obfuscation) Hostname(obfuscator func(string) string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hostname = obfuscator
}

func (o *obfuscation) IPAddresses(obfuscator func([]string) []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ips = obfuscator
}

type capture struct {
	mu               sync.Mutex
	fileFingerprints bool
	buildLogging     bool
	testLogging      bool
}

func (c *capture) FileFingerprints() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileFingerprints
}

func (c *capture) SetFileFingerprints(capture bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fileFingerprints = capture
}

func (c *capture) BuildLogging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildLogging
}

func (c *capture) SetBuildLogging(capture bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buildLogging = capture
}

func (c *capture) TestLogging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testLogging
}

func (c *capture) SetTestLogging(capture bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testLogging = capture
}
