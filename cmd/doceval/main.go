// Command doceval replays a labeled sample set against a running
// classification service and writes accuracy reports (JSON and xlsx).
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/antonkarev/doc-classifier/internal/core/taxonomy"
	"github.com/antonkarev/doc-classifier/internal/evaluation"
	"github.com/antonkarev/doc-classifier/internal/observability/logging"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8000", "address of a running classification service")
	industry := flag.String("industry", "", "industry taxonomy to evaluate against (default: general)")
	samplesPath := flag.String("samples", "", "JSON file with labeled samples (default: builtin set)")
	jsonOut := flag.String("json-out", "eval_report.json", "JSON report output path")
	xlsxOut := flag.String("xlsx-out", "eval_report.xlsx", "xlsx workbook output path")
	callTimeout := flag.Duration("call-timeout", 90*time.Second, "timeout per classify call")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := logging.NewTextLogger("doceval", *logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := taxonomy.LoadCatalog()
	if err != nil {
		log.Fatalf("load taxonomies: %v", err)
	}
	set := catalog.Get(*industry)

	samples := evaluation.BuiltinSamples()
	if *samplesPath != "" {
		samples, err = evaluation.LoadSamples(*samplesPath)
		if err != nil {
			log.Fatalf("load samples: %v", err)
		}
	}

	client := &http.Client{Timeout: *callTimeout}
	serviceURL := strings.TrimRight(*baseURL, "/")
	evaluator := evaluation.NewEvaluator(set.Labels())

	for _, sample := range samples {
		if ctx.Err() != nil {
			logger.Warn("evaluation_interrupted", "remaining", len(samples))
			break
		}

		predicted, elapsed, err := classifyOnce(ctx, client, serviceURL, *industry, sample.Text)
		if err != nil {
			logger.Warn("classify_call_failed", "expected", sample.Label, "error", err)
			evaluator.Add(sample.Label, "", elapsed)
			continue
		}

		logger.Info("sample_scored",
			"expected", sample.Label,
			"predicted", predicted,
			"correct", predicted == sample.Label,
			"elapsed_seconds", elapsed.Seconds(),
		)
		evaluator.Add(sample.Label, predicted, elapsed)
	}

	summary, err := evaluator.Summary()
	if err != nil {
		log.Fatalf("summarize: %v", err)
	}

	if err := evaluation.WriteJSON(*jsonOut, summary); err != nil {
		log.Fatalf("write json report: %v", err)
	}
	if err := evaluation.WriteWorkbook(*xlsxOut, summary); err != nil {
		log.Fatalf("write workbook: %v", err)
	}

	fmt.Printf("evaluated %d samples: accuracy %.2f, macro F1 %.2f\n",
		summary.TotalSamples, summary.Accuracy, summary.Macro.F1)
	fmt.Printf("reports written to %s and %s\n", *jsonOut, *xlsxOut)
}

type classifyRequest struct {
	Text     string `json:"text"`
	Industry string `json:"industry,omitempty"`
}

type classifyResponse struct {
	Results struct {
		Classification string `json:"classification"`
	} `json:"results"`
}

func classifyOnce(ctx context.Context, client *http.Client, baseURL, industry, text string) (string, time.Duration, error) {
	body, err := json.Marshal(classifyRequest{Text: text, Industry: industry})
	if err != nil {
		return "", 0, fmt.Errorf("encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", elapsed, fmt.Errorf("classify returned status %s", resp.Status)
	}
	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", elapsed, fmt.Errorf("decode classify response: %w", err)
	}
	if decoded.Results.Classification == "" {
		return "", elapsed, fmt.Errorf("classify response carries no classification")
	}
	return decoded.Results.Classification, elapsed, nil
}
