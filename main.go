package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"urlvet/ai"
	"urlvet/classify"
	"urlvet/content"
	"urlvet/enrich"
	"urlvet/features"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		enrichIn   = flag.String("enrich", "", "input CSV of (url,type) rows; runs batch enrichment instead of serving")
		enrichOut  = flag.String("out", "enriched.csv", "enrichment output path (.csv or .xlsx)")
		chunkSize  = flag.Int("chunk", 100, "rows per enrichment chunk")
		workers    = flag.Int("workers", 6, "concurrent WHOIS workers")
		probeHTTPS = flag.Bool("probe-https", false, "annotate each enriched row with a live HTTPS check")
	)
	flag.Parse()

	if *enrichIn != "" {
		runEnrichment(*enrichIn, *enrichOut, *chunkSize, *workers, *probeHTTPS)
		return
	}

	serve()
}

func runEnrichment(inPath, outPath string, chunkSize, workers int, probeHTTPS bool) {
	rows, err := enrich.ReadRows(inPath)
	if err != nil {
		log.Fatalf("[ENRICH] read %s: %v", inPath, err)
	}
	log.Printf("[ENRICH] %d rows loaded from %s", len(rows), inPath)

	writer, err := enrich.NewWriter(outPath, probeHTTPS)
	if err != nil {
		log.Fatalf("[ENRICH] open %s: %v", outPath, err)
	}

	pipeline := enrich.NewPipeline(nil)
	pipeline.ChunkSize = chunkSize
	pipeline.Workers = workers
	pipeline.ProbeHTTPS = probeHTTPS

	if err := pipeline.Run(context.Background(), rows, writer.WriteChunk); err != nil {
		log.Fatalf("[ENRICH] run failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("[ENRICH] write %s: %v", outPath, err)
	}
	log.Printf("[ENRICH] done, %d rows written to %s", len(rows), outPath)
}

func serve() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ref := features.LoadRefData(os.Getenv("REFDATA_DIR"))
	builder := features.NewBuilder(ref)
	dispatcher := content.NewDispatcher()
	scorer := classify.NewHTTPScorer()

	var contentClassifier classify.ContentClassifier
	if gemini, err := ai.GetGeminiClient(); err != nil {
		log.Printf("[GEMINI] client unavailable, content classification disabled: %v", err)
	} else {
		contentClassifier = gemini
	}

	handler := &classify.Handler{
		Orchestrator: classify.NewOrchestrator(builder, dispatcher, contentClassifier, scorer),
	}

	http.HandleFunc("/classify", handler.Classify)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Printf("✅ urlvet service listening on :%s\n", port)
	log.Println("📍 Endpoints:")
	log.Println("   POST /classify     - URL safety classification")
	log.Println("   GET  /healthz      - Liveness check")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
