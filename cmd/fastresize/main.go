package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"fastresize/internal/imgconv"
	"fastresize/pkg/config"
	"fastresize/pkg/convolution"
	"fastresize/pkg/filters"
	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
	"fastresize/pkg/resize"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Input image (PNG or JPEG)")
	outputPath := flag.String("output", "", "Output image path (format chosen by extension)")
	width := flag.Int("width", 0, "Target width in pixels")
	height := flag.Int("height", 0, "Target height in pixels")
	filterName := flag.String("filter", "", "Resampling filter (overrides config)")
	algorithm := flag.String("algorithm", "", "Resampling algorithm: convolution, nearest or supersampling (overrides config)")
	cores := flag.Int("cores", 0, "Number of worker goroutines (overrides config)")
	configPath := flag.String("config", "fastresize.yaml", "Configuration file path")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file and exit")
	comparePath := flag.String("compare", "", "Reference image to compare the output against (prints RMSE and PSNR)")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputPath == "" || *outputPath == "" || *width <= 0 || *height <= 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *filterName != "" {
		cfg.Resize.Filter = *filterName
	}
	if *algorithm != "" {
		cfg.Resize.Algorithm = *algorithm
	}
	if *cores > 0 {
		cfg.Resize.Workers = *cores
	}

	src, err := decodeImage(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input image: %v", err)
	}

	resizer, err := buildResizer(cfg)
	if err != nil {
		log.Fatalf("Invalid resize settings: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("Resizing %dx%d -> %dx%d (%s, %d workers, cpu: %s)\n",
			src.Width(), src.Height(), *width, *height,
			cfg.Resize.Algorithm, cfg.Resize.Workers, resizer.CPUExtensions())
	}

	dst := imaging.New(*width, *height, src.PixelType())
	startTime := time.Now()
	premultiplied := false
	if cfg.Resize.PremultiplyAlpha && src.PixelType() == pixels.U8x4 {
		if err := resize.PremultiplyAlpha(src); err != nil {
			log.Fatalf("Premultiply failed: %v", err)
		}
		premultiplied = true
	}
	if err := resizer.Resize(src, dst); err != nil {
		log.Fatalf("Resize failed: %v", err)
	}
	if premultiplied {
		if err := resize.UnpremultiplyAlpha(dst); err != nil {
			log.Fatalf("Unpremultiply failed: %v", err)
		}
	}
	elapsed := time.Since(startTime)

	if err := encodeImage(*outputPath, dst, cfg.Output.JPEGQuality); err != nil {
		log.Fatalf("Failed to write output image: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("Done in %.3f seconds, output saved to %s\n", elapsed.Seconds(), *outputPath)
	}

	if *comparePath != "" {
		ref, err := decodeImage(*comparePath)
		if err != nil {
			log.Fatalf("Failed to read reference image: %v", err)
		}
		rmse, psnr, err := compareImages(dst, ref)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		fmt.Printf("Comparison with %s:\n", *comparePath)
		fmt.Printf("  RMSE: %.4f\n", rmse)
		fmt.Printf("  PSNR: %.2f dB\n", psnr)
	}
}

// buildResizer translates the configuration into a Resizer.
func buildResizer(cfg *config.Config) (*resize.Resizer, error) {
	f, err := filters.ByName(cfg.Resize.Filter)
	if err != nil {
		return nil, err
	}
	var alg resize.Algorithm
	switch cfg.Resize.Algorithm {
	case "nearest":
		alg = resize.Nearest()
	case "supersampling":
		alg = resize.SuperSampling(f, cfg.Resize.SuperSamplingFactor)
	case "convolution", "":
		alg = resize.Convolution(f)
	default:
		return nil, fmt.Errorf("unknown algorithm %q", cfg.Resize.Algorithm)
	}
	r := resize.NewResizer(alg)
	if cfg.Resize.Workers > 0 {
		r.SetWorkers(cfg.Resize.Workers)
	}
	if cfg.Resize.ForceScalar {
		r.SetCPUExtensions(convolution.CPUNone)
	}
	return r, nil
}

func decodeImage(path string) (*imaging.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return imgconv.FromStd(img), nil
}

func encodeImage(path string, img *imaging.Image, jpegQuality int) error {
	std, err := imgconv.ToStd(img)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, std, &jpeg.Options{Quality: jpegQuality})
	default:
		return png.Encode(f, std)
	}
}

// compareImages reports the root mean square error and peak signal-to-noise
// ratio between two images of equal shape and pixel type.
func compareImages(a, b *imaging.Image) (rmse, psnr float64, err error) {
	if a.PixelType() != b.PixelType() || a.Width() != b.Width() || a.Height() != b.Height() {
		return 0, 0, fmt.Errorf("images differ in shape or pixel type")
	}
	ab, bb := a.Bytes(), b.Bytes()
	diffs := make([]float64, len(ab))
	for i := range ab {
		diffs[i] = float64(ab[i]) - float64(bb[i])
	}
	floats.Mul(diffs, diffs)
	mse := stat.Mean(diffs, nil)
	rmse = math.Sqrt(mse)
	if mse == 0 {
		return 0, math.Inf(1), nil
	}
	psnr = 20*math.Log10(255) - 10*math.Log10(mse)
	return rmse, psnr, nil
}
