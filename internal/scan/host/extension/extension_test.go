package extension

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/realmbridge/internal/scan/host/scanapi"
)

func TestExtensionSettings(t *testing.T) {
	ext := New("HttpBuildCache")
	ext.SetServer("https://scans.example.com")
	ext.SetProjectID("awesomeProject")
	ext.SetAllowUntrustedServer(true)
	ext.SetAccessKey("key")

	if ext.Server() != "https://scans.example.com" || ext.ProjectID() != "awesomeProject" ||
		!ext.AllowUntrustedServer() || ext.AccessKey() != "key" || ext.BuildCache() != "HttpBuildCache" {
		t.Fatalf("unexpected settings: %q %q %v %q %q",
			ext.Server(), ext.ProjectID(), ext.AllowUntrustedServer(), ext.AccessKey(), ext.BuildCache())
	}
	var configured scanapi.BuildScan
	ext.ConfigureBuildScan(func(scan scanapi.BuildScan) { configured = scan })
	if configured != ext.BuildScan() {
		t.Fatal("ConfigureBuildScan should hand over the extension's build scan")
	}
}

func TestFinishPublishes(t *testing.T) {
	ext := New("")
	ext.SetServer("https://scans.example.com/")
	ext.SetProjectID("awesomeProject")
	scan := ext.BuildScan()
	scan.Tag("CI")
	scan.Value("branch", "main")
	scan.Link("ci", "https://ci.example.com/1")
	scan.Background(func(s scanapi.BuildScan) { s.Tag("background") })
	scan.SetUploadMode(scanapi.Background)

	var outcomes []scanapi.Outcome
	scan.BuildFinished(func(r scanapi.BuildResult) { outcomes = append(outcomes, r.Outcome()) })
	var publishedURI string
	scan.BuildScanPublished(func(p scanapi.PublishedBuildScan) { publishedURI = p.BuildScanURI() })

	report, err := Finish(context.Background(), ext, Result{Outcome: scanapi.Failure, Username: "alice"})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !report.Published {
		t.Fatal("expected scan to be published")
	}
	if !strings.HasPrefix(report.BuildScanURI, "https://scans.example.com/s/") {
		t.Fatalf("uri = %q", report.BuildScanURI)
	}
	if publishedURI != report.BuildScanURI {
		t.Fatalf("published action saw %q, report has %q", publishedURI, report.BuildScanURI)
	}
	if !reflect.DeepEqual(outcomes, []scanapi.Outcome{scanapi.Failure}) {
		t.Fatalf("outcomes = %v", outcomes)
	}
	if !reflect.DeepEqual(report.Tags, []string{"CI", "background"}) {
		t.Fatalf("tags = %v", report.Tags)
	}
	if report.Values["branch"] != "main" || report.Links["ci"] != "https://ci.example.com/1" {
		t.Fatalf("values = %v links = %v", report.Values, report.Links)
	}
	if report.UploadMode != scanapi.Background {
		t.Fatalf("upload mode = %v", report.UploadMode)
	}
	if report.BuildScanID != scanID("awesomeProject", 1) {
		t.Fatalf("id = %q", report.BuildScanID)
	}
}

func TestFinishRequiresTermsForPublicServer(t *testing.T) {
	ext := New("")
	if _, err := Finish(context.Background(), ext, Result{Outcome: scanapi.Success}); !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}

	ext.BuildScan().SetTermsOfUseAgree("yes")
	report, err := Finish(context.Background(), ext, Result{Outcome: scanapi.Success})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !strings.HasPrefix(report.BuildScanURI, DefaultServer) {
		t.Fatalf("uri = %q", report.BuildScanURI)
	}
}

func TestFinishRejectsUntrustedServer(t *testing.T) {
	ext := New("")
	ext.SetServer("http://scans.local")
	if _, err := Finish(context.Background(), ext, Result{}); !errors.Is(err, ErrUntrustedServer) {
		t.Fatalf("expected ErrUntrustedServer, got %v", err)
	}
	ext.SetAllowUntrustedServer(true)
	if _, err := Finish(context.Background(), ext, Result{}); err != nil {
		t.Fatalf("finish with untrusted server allowed: %v", err)
	}
}

func TestFinishHonorsPublishingPredicate(t *testing.T) {
	ext := New("")
	ext.SetServer("https://scans.example.com")
	ext.BuildScan().Publishing(func(p scanapi.Publishing) {
		p.OnlyIf(func(ctx scanapi.PublishingContext) bool {
			return ctx.BuildResult().Outcome() == scanapi.Failure
		})
	})

	report, err := Finish(context.Background(), ext, Result{Outcome: scanapi.Success})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if report.Published {
		t.Fatal("successful build should not be published")
	}
	report, err = Finish(context.Background(), ext, Result{Outcome: scanapi.Failure})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !report.Published {
		t.Fatal("failed build should be published")
	}
}

func TestFinishAppliesObfuscationAndCapture(t *testing.T) {
	ext := New("")
	ext.SetServer("https://scans.example.com")
	scan := ext.BuildScan()
	scan.Obfuscation(func(o scanapi.Obfuscation) {
		o.Username(func(string) string { return "******" })
		o.Hostname(strings.ToUpper)
		o.IPAddresses(func(ips []string) []string { return []string{"0.0.0.0"} })
	})
	scan.Capture(func(c scanapi.Capture) { c.SetTestLogging(false) })

	report, err := Finish(context.Background(), ext, Result{
		Username:    "alice",
		Hostname:    "build-1",
		IPAddresses: []string{"10.0.0.1", "10.0.0.2"},
	})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if report.Username != "******" || report.Hostname != "BUILD-1" {
		t.Fatalf("username = %q hostname = %q", report.Username, report.Hostname)
	}
	if !reflect.DeepEqual(report.IPAddresses, []string{"0.0.0.0"}) {
		t.Fatalf("ips = %v", report.IPAddresses)
	}
	if !report.FileFingerprints || !report.BuildLogging || report.TestLogging {
		t.Fatalf("capture = %v %v %v", report.FileFingerprints, report.BuildLogging, report.TestLogging)
	}
}

func TestFinishReportsPanickingAction(t *testing.T) {
	ext := New("")
	ext.BuildScan().BuildFinished(func(scanapi.BuildResult) { panic(errors.New("boom")) })

	_, err := Finish(context.Background(), ext, Result{})
	if err == nil || !strings.Contains(err.Error(), "build finished action: boom") {
		t.Fatalf("expected build finished failure, got %v", err)
	}
}

func TestFinishUnwrapsHiddenFeatures(t *testing.T) {
	ext := New("")
	ext.SetServer("https://scans.example.com")
	wrapped := WithHiddenFeatures(WithHiddenFeatures(ext))

	if wrapped.Server() != "https://scans.example.com" {
		t.Fatalf("server through wrapper = %q", wrapped.Server())
	}
	if _, err := Finish(context.Background(), wrapped, Result{}); err != nil {
		t.Fatalf("finish: %v", err)
	}
}

type foreignExtension struct{ scanapi.Extension }

func TestFinishRejectsForeignExtension(t *testing.T) {
	if _, err := Finish(context.Background(), foreignExtension{}, Result{}); !errors.Is(err, ErrNotHostExtension) {
		t.Fatalf("expected ErrNotHostExtension, got %v", err)
	}
}

func TestPublishHonorsContext(t *testing.T) {
	ext := New("")
	ext.SetServer("https://scans.example.com")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ext.BuildScan().Publish(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
