package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/FlavioCFOliveira/sumnet/internal/activations"
	"github.com/FlavioCFOliveira/sumnet/internal/hostinfo"
	"github.com/FlavioCFOliveira/sumnet/internal/net"
)

func main() {
	epochs := flag.Int("epochs", 10000, "maximum training epochs")
	lr := flag.Float64("lr", 0.1, "learning rate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "initialization seed")
	flag.Parse()

	fmt.Println("=== XOR Training Example ===")
	fmt.Println(hostinfo.Banner())

	// XOR training data
	trainX := [][]float64{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}
	trainY := []float64{0, 1, 1, 0}

	// 2 inputs -> 2 sigmoid layers of 2 nodes, output is the sum of the last layer
	network, err := net.New(2, 2, 2, activations.KindSigmoid, net.WithSeed(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create network: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Network: %d layers x %d nodes, %s, seed %d\n",
		network.LayerCount(), network.Width(), network.Activation(), *seed)

	history, err := net.Fit(network, trainX, trainY, net.FitConfig{
		Epochs:        *epochs,
		LearningRate:  *lr,
		Mode:          net.PerExample,
		LossThreshold: 0.001,
		Callbacks:     []net.Callback{net.NewLogger(1000)},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}
	if history.Converged {
		fmt.Printf("Loss below threshold after %d epochs\n", history.Epochs())
	}

	fmt.Println("\nTesting after training:")
	for i := range trainX {
		pred, err := network.Forward(trainX[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "forward: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Expected: %.1f\n", trainX[i], pred, trainY[i])
	}
}
