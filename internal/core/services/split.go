package services

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// Split shuffles docs and partitions them into train and test sets.
// The test set holds ceil(testSize·n) documents and the train set the rest;
// both must be non-empty. Every document lands in exactly one partition.
func Split(docs []domain.Document, testSize float64, rng *rand.Rand) (train, test []domain.Document, err error) {
	if err := domain.ValidateTestSize(testSize); err != nil {
		return nil, nil, err
	}
	if rng == nil {
		rng = NewRand(nil)
	}

	n := len(docs)
	nTest, nTrain, err := splitSizes(n, testSize)
	if err != nil {
		return nil, nil, err
	}

	perm := rng.Perm(n)
	test = make([]domain.Document, 0, nTest)
	for _, i := range perm[:nTest] {
		test = append(test, docs[i])
	}
	train = make([]domain.Document, 0, nTrain)
	for _, i := range perm[nTest:] {
		train = append(train, docs[i])
	}
	return train, test, nil
}

func splitSizes(n int, testSize float64) (nTest, nTrain int, err error) {
	nTest = int(math.Ceil(testSize * float64(n)))
	nTrain = n - nTest
	if nTest == 0 || nTrain <= 0 {
		return 0, 0, fmt.Errorf("%w: %d documents with test size %v leaves an empty partition (train %d, test %d)",
			domain.ErrInvalidInput, n, testSize, nTrain, nTest)
	}
	return nTest, nTrain, nil
}

// NewRand returns a random source for Split. A nil seed draws a fresh one.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*seed), 0))
}
