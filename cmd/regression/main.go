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

// Regression on an arbitrary numeric CSV. The whole matrix, target
// included, is standardized before the target column is split off.
func main() {
	data := flag.String("data", "data.csv", "numeric CSV file")
	header := flag.Bool("header", false, "skip the first line of the CSV")
	label := flag.String("label", "first", "target column: first or last")
	layers := flag.Int("layers", 3, "number of layers")
	nodes := flag.Int("nodes", 10, "nodes per layer (layer width always follows the feature count)")
	activation := flag.String("activation", "tanh", "relu, tanh, sigmoid or identity")
	epochs := flag.Int("epochs", 5000, "maximum training epochs")
	lr := flag.Float64("lr", 0.0001, "learning rate")
	threshold := flag.Float64("threshold", 0.001, "stop when the average loss falls below this")
	seed := flag.Int64("seed", time.Now().UnixNano(), "initialization seed")
	split := flag.Float64("split", 1, "fraction of rows to train on; the rest are held out and scored")
	logCSV := flag.String("log-csv", "", "optional per-epoch loss CSV")
	flag.Parse()

	fmt.Println("=== CSV Regression ===")
	fmt.Println(hostinfo.Banner())

	labelCol := dataset.LabelFirst
	switch *label {
	case "first":
	case "last":
		labelCol = dataset.LabelLast
	default:
		fail("unknown label column %q", *label)
	}

	if *split <= 0 || *split > 1 {
		fail("split %v, want a fraction in (0, 1]", *split)
	}

	kind, err := activations.ParseKind(*activation)
	if err != nil {
		fail("%v", err)
	}

	rows, err := dataset.LoadCSV(*data, *header)
	if err != nil {
		fail("load data: %v", err)
	}

	scaler, err := dataset.FitScaler(rows)
	if err != nil {
		fail("normalize: %v", err)
	}
	if warn := scaler.Warning(); warn != nil {
		fmt.Printf("Warning: %v; those columns are set to 0\n", warn)
	}
	normalized, err := scaler.Transform(rows)
	if err != nil {
		fail("normalize: %v", err)
	}

	ds, err := dataset.SplitXY(normalized, labelCol)
	if err != nil {
		fail("split: %v", err)
	}
	fmt.Printf("Data loaded and normalized: %d rows, %d features\n", ds.Len(), ds.Width())

	train, test := ds.Split(*split)
	if train.Len() == 0 {
		fail("split %v leaves no training rows", *split)
	}
	if test.Len() > 0 {
		fmt.Printf("Training on %d rows, holding out %d\n", train.Len(), test.Len())
	}

	network, err := net.New(ds.Width(), *layers, *nodes, kind, net.WithSeed(*seed))
	if err != nil {
		fail("create network: %v", err)
	}

	callbacks := []net.Callback{net.NewLogger(100)}
	var csvLog *net.CSVLogger
	if *logCSV != "" {
		csvLog = net.NewCSVLogger(*logCSV, false)
		callbacks = append(callbacks, csvLog)
	}

	history, err := net.Fit(network, train.Features, train.Targets, net.FitConfig{
		Epochs:        *epochs,
		LearningRate:  *lr,
		Mode:          net.FullBatch,
		LossThreshold: *threshold,
		Callbacks:     callbacks,
	})
	if err != nil {
		fail("training failed: %v", err)
	}
	if history.Converged {
		fmt.Println("Loss below threshold, stopping training.")
	}
	if csvLog != nil && csvLog.Err() != nil {
		fmt.Printf("Warning: %v\n", csvLog.Err())
	}

	if test.Len() > 0 {
		testLoss, err := network.Evaluate(test.Features, test.Targets)
		if err != nil {
			fail("evaluate: %v", err)
		}
		fmt.Printf("Held-out loss over %d rows: %.6f\n", test.Len(), testLoss)
	}

	fmt.Println("\nPredictions after training:")
	for i := 0; i < min(10, ds.Len()); i++ {
		pred, err := network.Forward(ds.Features[i])
		if err != nil {
			fail("forward: %v", err)
		}
		fmt.Printf("Input %d, Predicted: %.5f, Actual: %.5f\n", i, pred, ds.Targets[i])
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
