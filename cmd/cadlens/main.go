package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/drafthaus/cadlens/internal/analysis"
	"github.com/drafthaus/cadlens/internal/cad"
	"github.com/drafthaus/cadlens/internal/config"
	"github.com/drafthaus/cadlens/internal/detection"
	"github.com/drafthaus/cadlens/internal/features"
	"github.com/drafthaus/cadlens/internal/imaging"
	"github.com/drafthaus/cadlens/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	// Reports and JSON go to stdout; logging stays on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("cadlens %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		printUsage()
	case "extract":
		if err := runExtract(os.Args[2:]); err != nil {
			log.Fatalf("extract: %v", err)
		}
	case "analyze":
		if err := runAnalyze(os.Args[2:]); err != nil {
			log.Fatalf("analyze: %v", err)
		}
	case "models":
		runModels()
	default:
		fmt.Fprintf(os.Stderr, "cadlens: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("cadlens - CAD drawing feature extraction and AI analysis")
	fmt.Println()
	fmt.Println("Usage: cadlens <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract <image>    Extract visual features and print the analysis prompt")
	fmt.Println("  analyze <image>    Run the multi-pass AI analysis and print the report")
	fmt.Println("  models             List the configured model catalog")
	fmt.Println("  version            Print version information")
	fmt.Println("  help               Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  GOOGLE_API_KEY        Gemini direct API key")
	fmt.Println("  OPENROUTER_API_KEY    OpenRouter API key")
	fmt.Println()
	fmt.Println("A cadlens.toml in the working directory tunes detection and")
	fmt.Println("analysis parameters; a .env file is honored for the API keys.")
}

// extractFeatures runs the full extraction pipeline for one image,
// optionally enriched by a saved CAD manifest.
func extractFeatures(cfg *config.Config, cache *imaging.ImageCache, imagePath, manifestPath string) (*features.FeatureSet, error) {
	img, err := cache.Load(imagePath)
	if err != nil {
		return nil, err
	}

	size, err := imaging.GetDimensions(cache, imagePath)
	if err != nil {
		return nil, err
	}

	detected := detection.New(cfg.Detection).Detect(img)
	text := ocr.New(cfg.OCR).ExtractAnnotations(imagePath)
	colorMode := imaging.AnalyzeColorMode(img)

	var manifest *cad.Manifest
	if manifestPath != "" {
		manifest, err = loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
	}

	return features.Merge(*size, detected, text, *colorMode, manifest), nil
}

func loadManifest(path string) (*cad.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m cad.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	manifestPath := fs.String("manifest", "", "attach a saved CAD manifest JSON")
	asJSON := fs.Bool("json", false, "print the raw feature set as JSON")
	configPath := fs.String("config", "", "path to the TOML tuning file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cadlens extract [options] <image>")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	featureSet, err := extractFeatures(cfg, imaging.NewImageCache(), fs.Arg(0), *manifestPath)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(featureSet)
	}
	fmt.Println(featureSet.Prompt())
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	modelID := fs.String("model", "gemini-2.5-flash", "primary model for the analysis")
	manifestPath := fs.String("manifest", "", "attach a saved CAD manifest JSON")
	compare := fs.String("compare", "", "comma-separated text model IDs for a comparative run")
	configPath := fs.String("config", "", "path to the TOML tuning file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cadlens analyze [options] <image>")
	}
	imagePath := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	featureSet, err := extractFeatures(cfg, cache, imagePath, *manifestPath)
	if err != nil {
		return err
	}

	img, err := cache.Load(imagePath)
	if err != nil {
		return err
	}
	variants := imaging.Preprocess(img)
	imageBytes, err := imaging.EncodePNG(variants[0].Image)
	if err != nil {
		return err
	}

	orchestrator := analysis.NewOrchestrator(
		analysis.NewRegistry(), cfg.Providers(), cfg.OrchestratorOptions()...)

	ctx := context.Background()
	if *compare != "" {
		textModels := strings.Split(*compare, ",")
		for i := range textModels {
			textModels[i] = strings.TrimSpace(textModels[i])
		}
		result := orchestrator.CompareModels(ctx, featureSet.Prompt(), imageBytes, *modelID, textModels)
		for _, report := range result.Reports {
			report.ImagePath = imagePath
			fmt.Println(report.Format())
		}
		if result.Synthesis.Succeeded {
			fmt.Println("COMPARATIVE SUMMARY")
			fmt.Println()
			fmt.Println(result.Synthesis.SummaryText)
		}
		return nil
	}

	report := orchestrator.Analyze(ctx, featureSet.Prompt(), imageBytes, *modelID)
	report.ImagePath = imagePath
	fmt.Println(report.Format())
	return nil
}

func runModels() {
	registry := analysis.NewRegistry()
	for _, d := range registry.List() {
		vision := " "
		if d.SupportsVision {
			vision = "V"
		}
		free := " "
		if d.Free {
			free = "F"
		}
		fmt.Printf("%s%s  %-45s %-13s %s\n", vision, free, d.ID, d.Provider, d.DisplayName)
	}
	fmt.Println()
	fmt.Println("V = vision capable, F = free tier")
}
