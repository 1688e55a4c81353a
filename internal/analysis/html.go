package analysis

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

// Severity buckets for the flagged-case cards, keyed off the deviation
// score.
func severity(deviationScore float64) string {
	switch {
	case deviationScore > 3.0:
		return "high"
	case deviationScore > 2.5:
		return "medium"
	default:
		return "low"
	}
}

type htmlCase struct {
	AudioFile      string
	AudioBasename  string
	Text           string
	Duration       string
	WordCount      int
	WordsPerSecond string
	DeviationScore string
	Severity       string
}

type htmlReport struct {
	Title         string
	GeneratedAt   string
	TotalSegments int
	AverageWPS    string
	StdDevWPS     string
	UnusualCount  int
	Cases         []htmlCase
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} — Transcription Analysis</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 20px; background: #f8f9fa; color: #333; }
.container { max-width: 1100px; margin: 0 auto; }
.header { background: #6c5ce7; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; margin-bottom: 24px; }
.stat { background: white; padding: 16px; border-radius: 8px; text-align: center; }
.stat .value { font-size: 22px; font-weight: bold; color: #6c5ce7; }
.cases { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 16px; }
.case { background: white; padding: 16px; border-radius: 8px; }
.case.high { border-left: 4px solid #ff4757; }
.case.medium { border-left: 4px solid #ffa502; }
.case.low { border-left: 4px solid #2ed573; }
.metric { display: flex; justify-content: space-between; font-size: 13px; margin: 4px 0; }
.text { margin-top: 8px; padding: 8px; background: #f8f9fa; border-radius: 4px; font-size: 13px; }
audio { width: 100%; margin-top: 8px; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>{{.Title}}</h1>
<p>Generated on {{.GeneratedAt}}</p>
</div>
<div class="stats">
<div class="stat"><div>Total Segments</div><div class="value">{{.TotalSegments}}</div></div>
<div class="stat"><div>Average Words/Second</div><div class="value">{{.AverageWPS}}</div></div>
<div class="stat"><div>Standard Deviation</div><div class="value">{{.StdDevWPS}}</div></div>
<div class="stat"><div>Unusual Cases</div><div class="value">{{.UnusualCount}}</div></div>
</div>
<h2>Unusual Cases</h2>
<div class="cases">
{{range .Cases}}<div class="case {{.Severity}}">
<h3>{{.AudioFile}}</h3>
<div class="metric"><span>Duration</span><span>{{.Duration}}s</span></div>
<div class="metric"><span>Word Count</span><span>{{.WordCount}}</span></div>
<div class="metric"><span>Words/Second</span><span>{{.WordsPerSecond}}</span></div>
<div class="metric"><span>Deviation Score</span><span>{{.DeviationScore}}</span></div>
<div class="text">{{.Text}}</div>
<audio controls src="audio/{{.AudioBasename}}"></audio>
</div>
{{end}}</div>
</div>
</body>
</html>
`))

// WriteHTMLReport renders the human-readable report for a scored source.
func WriteHTMLReport(path, sourceID string, summary Summary) error {
	titler := cases.Title(language.Und)
	report := htmlReport{
		Title:         titler.String(sourceID),
		GeneratedAt:   time.Now().Format("2006-01-02 15:04:05"),
		TotalSegments: summary.TotalSegments,
		AverageWPS:    fmt.Sprintf("%.2f", summary.AverageWPS),
		StdDevWPS:     fmt.Sprintf("%.2f", summary.StdDevWPS),
		UnusualCount:  summary.UnusualCount,
		Cases:         make([]htmlCase, 0, len(summary.Unusual)),
	}
	for _, seg := range summary.Unusual {
		report.Cases = append(report.Cases, htmlCaseFromSegment(seg))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer file.Close()
	if err := reportTemplate.Execute(file, report); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return file.Close()
}

func htmlCaseFromSegment(seg segment.Segment) htmlCase {
	return htmlCase{
		AudioFile:      seg.AudioFile,
		AudioBasename:  filepath.Base(seg.AudioFile),
		Text:           seg.Text,
		Duration:       fmt.Sprintf("%.2f", seg.Duration),
		WordCount:      seg.Metrics.WordCount,
		WordsPerSecond: fmt.Sprintf("%.2f", seg.Metrics.WordsPerSecond),
		DeviationScore: fmt.Sprintf("%.2f", seg.Metrics.DeviationScore),
		Severity:       severity(seg.Metrics.DeviationScore),
	}
}
