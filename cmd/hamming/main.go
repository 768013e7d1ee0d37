package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/FlavioCFOliveira/sumnet/internal/activations"
	"github.com/FlavioCFOliveira/sumnet/internal/dataset"
	"github.com/FlavioCFOliveira/sumnet/internal/hostinfo"
	"github.com/FlavioCFOliveira/sumnet/internal/net"
)

func main() {
	data := flag.String("data", "", "hamming CSV to train on; generated in memory when empty")
	generate := flag.String("generate", "", "write the 4096-row hamming CSV to this path and exit")
	layers := flag.Int("layers", 12, "number of layers")
	activation := flag.String("activation", "sigmoid", "relu, tanh, sigmoid or identity")
	epochs := flag.Int("epochs", 10000, "maximum training epochs")
	lr := flag.Float64("lr", 0.1, "learning rate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "initialization seed")
	logCSV := flag.String("log-csv", "", "optional per-epoch loss CSV")
	flag.Parse()

	if *generate != "" {
		if err := writeHamming(*generate); err != nil {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Data generated to %s\n", *generate)
		return
	}

	fmt.Println("=== Hamming(12,8) Parity Detector ===")
	fmt.Println(hostinfo.Banner())

	ds, err := load(*data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load data: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Data loaded. Total samples: %d\n", ds.Len())

	kind, err := activations.ParseKind(*activation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	network, err := net.New(ds.Width(), *layers, ds.Width(), kind, net.WithSeed(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create network: %v\n", err)
		os.Exit(1)
	}

	callbacks := []net.Callback{net.NewLogger(100)}
	var csvLog *net.CSVLogger
	if *logCSV != "" {
		csvLog = net.NewCSVLogger(*logCSV, false)
		callbacks = append(callbacks, csvLog)
	}

	history, err := net.Fit(network, ds.Features, ds.Targets, net.FitConfig{
		Epochs:        *epochs,
		LearningRate:  *lr,
		Mode:          net.FullBatch,
		LossThreshold: 0.06,
		Callbacks:     callbacks,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}
	if history.Converged {
		fmt.Println("Loss below threshold, stopping training.")
	}
	if csvLog != nil && csvLog.Err() != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", csvLog.Err())
	}

	fmt.Println("\nSample predictions after training:")
	for i := 0; i < min(20, ds.Len()); i++ {
		pred, err := network.Forward(ds.Features[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "forward: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample %d, Predicted: %.4f, Actual: %.0f\n", i, pred, ds.Targets[i])
	}
}

func load(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.HammingDataset(), nil
	}
	rows, err := dataset.LoadCSV(path, true)
	if err != nil {
		return nil, err
	}
	return dataset.SplitXY(rows, dataset.LabelLast)
}

func writeHamming(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteHammingCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
