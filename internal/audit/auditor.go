package audit

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitaudit/internal/dataset"
	"splitaudit/internal/logging"
	"splitaudit/internal/probe"
	"splitaudit/internal/report"
)

// DefaultClusterThreshold is the group size above which an encoding
// fingerprint cluster is flagged.
const DefaultClusterThreshold = 50

// Options configure a single audit run.
type Options struct {
	// DataRoot is the dataset root directory containing the split
	// directories.
	DataRoot string

	// Splits lists the split directory names in canonical order.
	Splits []string

	// Workers bounds the extraction pool. Zero or negative selects
	// runtime.NumCPU().
	Workers int

	// ClusterThreshold is the strict lower bound on flagged fingerprint
	// group sizes. Zero or negative selects DefaultClusterThreshold.
	ClusterThreshold int

	// VerifyContainers enables cross-checking file headers against the
	// modality their extension promises.
	VerifyContainers bool

	// Prober extracts encoding fingerprints. Nil disables probing.
	Prober probe.Prober

	// ProbeAvailable reports whether Prober is backed by a usable tool.
	// When false the fingerprint and cluster stages are skipped.
	ProbeAvailable bool

	Logger *slog.Logger
}

// Auditor executes the full integrity pass over one dataset snapshot.
type Auditor struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) *Auditor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ClusterThreshold <= 0 {
		opts.ClusterThreshold = DefaultClusterThreshold
	}
	if opts.Prober == nil {
		opts.Prober = probe.NullProber{}
		opts.ProbeAvailable = false
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Auditor{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "auditor"),
	}
}

// Run performs the audit and builds the report. The returned report is
// complete but unwritten; persisting it is the caller's concern. On
// context cancellation Run returns the context's error and no report.
func (a *Auditor) Run(ctx context.Context) (*report.Report, error) {
	start := time.Now()

	a.logger.Info("indexing dataset",
		logging.String("root", a.opts.DataRoot),
		logging.Int("splits", len(a.opts.Splits)))
	ds, indexIssues, err := dataset.NewIndexer(a.opts.DataRoot, a.opts.Splits).Index(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("catalog built",
		logging.Int("samples", ds.TotalSamples()),
		logging.Int("skipped", ds.Skipped))
	if !a.opts.ProbeAvailable {
		a.logger.Debug("metadata probe unavailable, cluster analysis disabled for this run")
	}

	ext, err := a.extract(ctx, ds)
	if err != nil {
		return nil, err
	}

	findings := ext.index.findings(ds)
	if a.opts.ProbeAvailable {
		findings = append(findings, clusterFindings(ds, a.opts.ClusterThreshold)...)
	}
	if findings == nil {
		findings = []report.Finding{}
	}
	report.SortFindings(findings)
	assessment := assess(findings)

	rep := &report.Report{
		RunID:            uuid.NewString(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		ElapsedSeconds:   time.Since(start).Seconds(),
		DatasetRoot:      ds.Root,
		Splits:           ds.Splits,
		Environment:      report.CaptureEnvironment(),
		SampleStatistics: ds.SampleCounts(),
		TotalSamples:     ds.TotalSamples(),
		SkippedSamples:   ds.Skipped,
		BytesHashed:      ext.bytesHashed,
		ProbeAvailable:   a.opts.ProbeAvailable,
		RiskAssessment:   assessment,
		Findings:         findings,
		Errors:           append(indexIssues, ext.issues...),
		Recommendations:  recommendations(findings),
	}

	a.logger.Info("audit complete",
		logging.String("risk", string(assessment.Level)),
		logging.Int("findings", len(findings)),
		logging.Int("errors", len(rep.Errors)),
		logging.Duration("elapsed", time.Since(start)))
	return rep, nil
}

// extraction is the reducer's merged view of all worker output.
type extraction struct {
	index       *collisionIndex
	bytesHashed int64
	issues      []string
}

// extract fans the catalog out over the worker pool and reduces results
// through a single goroutine, so the collision index and the samples are
// written without locks. Issues are flattened in catalog order to keep
// the report deterministic regardless of worker scheduling.
func (a *Auditor) extract(ctx context.Context, ds *dataset.Dataset) (*extraction, error) {
	samples := ds.All()
	tasks := make(chan *dataset.Sample)
	results := make(chan sampleResult)

	var wg sync.WaitGroup
	for i := 0; i < a.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range tasks {
				results <- a.processSample(ctx, s)
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, s := range samples {
			select {
			case tasks <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ext := &extraction{index: newCollisionIndex()}
	perSample := make(map[*dataset.Sample][]issue, len(samples))
	for res := range results {
		s := res.sample
		s.Metadata = res.metadata
		s.Identity = res.identity
		s.VideoHash, s.VideoBytes = res.videoHash, res.videoBytes
		s.AudioHash, s.AudioBytes = res.audioHash, res.audioBytes
		s.VideoFP, s.AudioFP = res.videoFP, res.audioFP

		ext.bytesHashed += res.videoBytes + res.audioBytes
		ext.index.addSample(s)
		if len(res.issues) > 0 {
			perSample[s] = res.issues
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, s := range samples {
		for _, iss := range perSample[s] {
			ext.issues = append(ext.issues, iss.String())
		}
	}
	return ext, nil
}
