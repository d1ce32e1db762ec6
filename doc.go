// Package linbench trains and compares linear models with mini-batch gradient
// descent on top of gonum matrices.
//
// It bundles a small reverse-mode autograd core, three linear models, the
// optimizers that drive them, and a trainer that records the mean training
// and validation loss of every epoch.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/linbench/dataset"
//	    "github.com/YuminosukeSato/linbench/nn"
//	    "github.com/YuminosukeSato/linbench/optim"
//	    "github.com/YuminosukeSato/linbench/train"
//	)
//
//	func main() {
//	    features := [][]float64{{1}, {2}, {3}, {4}}
//	    labels := []float64{2, 4, 6, 8}
//	    loader, err := dataset.NewLoader(dataset.Float64Rows(dataset.New(features, labels)),
//	        dataset.WithBatchSize(2))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model, err := nn.NewLinearRegression(1, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    opt, err := optim.NewSGD(model.Parameters(), 0.01)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    tr, err := train.NewTrainer(model, loader, loader, opt, nn.MSELoss)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    history, err := tr.Train(10)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(history.Validation.Values())
//	}
//
// # Packages
//
//   - dataset: in-memory datasets, mini-batch loaders, train/validation split
//   - core/autograd: reverse-mode differentiation over gonum matrices
//   - core/model: the Module contract and gradient-free evaluation
//   - nn: LinearRegression, LogisticRegression (sigmoid or softmax), LinearSVM and losses
//   - optim: SGD, RMSProp and Adam
//   - train: the Trainer, loss records, callbacks and loss-curve plots
//   - linear: closed-form least squares baseline
//   - metrics: MSE, RMSE, MAE, R², Accuracy
//   - preprocessing: StandardScaler and MinMaxScaler
//   - pkg/errors, pkg/log: typed errors with stack traces and zerolog-backed logging
package linbench
