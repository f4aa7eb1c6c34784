// Package main provides a small demo CLI for the Vision Transformer.
//
// It builds one of the canonical configurations, runs a single forward pass
// on random input, and prints the parameter count and logits shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/born-ml/vit/backend/cpu"
	"github.com/born-ml/vit/model"
	"github.com/born-ml/vit/tensor"
)

func main() {
	configName := flag.String("config", "base", "model configuration: base, large or huge")
	batch := flag.Int("batch", 1, "batch size for the demo forward pass")
	flag.Parse()

	var cfg model.Config
	switch *configName {
	case "base":
		cfg = model.BaseConfig()
	case "large":
		cfg = model.LargeConfig()
	case "huge":
		cfg = model.HugeConfig()
	default:
		fmt.Fprintf(os.Stderr, "unknown config %q (want base, large or huge)\n", *configName)
		os.Exit(1)
	}

	backend := cpu.New()

	m, err := model.New(cfg, backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build model: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(m)
	fmt.Printf("patches per image: %d, sequence length: %d\n", cfg.NumPatches(), cfg.SeqLen())

	images := tensor.Randn[float32](tensor.Shape{*batch, cfg.InChannels, cfg.ImageSize, cfg.ImageSize}, backend)
	logits := m.Forward(images)

	fmt.Printf("logits: %v\n", logits.Shape())
}
