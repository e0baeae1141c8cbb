// Package generator fabricates synthetic customer transaction records
// whose label depends on the numeric fields and on the customer.
package generator

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/finprofile-dev/finprofile/internal/model"
)

// Config shapes the generated distributions.
type Config struct {
	Customers    int     `yaml:"customers"`
	AmountMu     float64 `yaml:"amount_mu"`    // mean of log(amount)
	AmountSigma  float64 `yaml:"amount_sigma"` // std dev of log(amount)
	CountLambda  float64 `yaml:"count_lambda"` // mean transactions per 30 days
	RecencyMean  float64 `yaml:"recency_mean"` // mean days since last transaction
	BalanceMu    float64 `yaml:"balance_mu"`
	BalanceSigma float64 `yaml:"balance_sigma"`
}

// DefaultConfig returns the stock distribution parameters.
func DefaultConfig() Config {
	return Config{
		Customers:    12,
		AmountMu:     4.0,
		AmountSigma:  0.8,
		CountLambda:  6,
		RecencyMean:  14,
		BalanceMu:    2500,
		BalanceSigma: 1500,
	}
}

// Validate rejects parameters the distributions cannot use.
func (c Config) Validate() error {
	switch {
	case c.Customers < 1:
		return fmt.Errorf("customers must be at least 1, got %d", c.Customers)
	case c.AmountSigma <= 0:
		return fmt.Errorf("amount_sigma must be positive, got %g", c.AmountSigma)
	case c.CountLambda <= 0:
		return fmt.Errorf("count_lambda must be positive, got %g", c.CountLambda)
	case c.RecencyMean <= 0:
		return fmt.Errorf("recency_mean must be positive, got %g", c.RecencyMean)
	case c.BalanceSigma <= 0:
		return fmt.Errorf("balance_sigma must be positive, got %g", c.BalanceSigma)
	}
	return nil
}

// Feature weights of the latent score.
const (
	weightAmount  = 0.8
	weightCount   = 1.2
	weightRecency = -1.5
	weightBalance = 0.6
)

type customer struct {
	name string
	bias float64
}

// Generator draws transactions from one seeded stream, so equal seeds
// produce equal files.
type Generator struct {
	cfg       Config
	src       *rand.ChaCha8
	customers []customer

	amount  distuv.LogNormal
	count   distuv.Poisson
	recency distuv.Exponential
	balance distuv.Normal
	unit    distuv.Uniform
}

// New creates a generator. The config must be valid.
func New(cfg Config, seed uint64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)

	g := &Generator{
		cfg:     cfg,
		src:     src,
		amount:  distuv.LogNormal{Mu: cfg.AmountMu, Sigma: cfg.AmountSigma, Src: src},
		count:   distuv.Poisson{Lambda: cfg.CountLambda, Src: src},
		recency: distuv.Exponential{Rate: 1 / cfg.RecencyMean, Src: src},
		balance: distuv.Normal{Mu: cfg.BalanceMu, Sigma: cfg.BalanceSigma, Src: src},
		unit:    distuv.Uniform{Min: 0, Max: 1, Src: src},
	}

	bias := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	g.customers = make([]customer, cfg.Customers)
	for i := range g.customers {
		g.customers[i] = customer{name: customerName(i), bias: bias.Rand()}
	}
	return g, nil
}

// Generate returns n new transactions.
func (g *Generator) Generate(n int) ([]model.Transaction, error) {
	txns := make([]model.Transaction, n)
	for i := range txns {
		t, err := g.next()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txns[i] = t
	}
	return txns, nil
}

func (g *Generator) next() (model.Transaction, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("generating id: %w", err)
	}

	c := g.customers[int(g.src.Uint64()%uint64(len(g.customers)))]
	amount := g.amount.Rand()
	count := g.count.Rand()
	days := math.Floor(g.recency.Rand())
	balance := g.balance.Rand()

	z := c.bias +
		weightAmount*(math.Log(amount)-g.cfg.AmountMu)/g.cfg.AmountSigma +
		weightCount*(count-g.cfg.CountLambda)/math.Sqrt(g.cfg.CountLambda) +
		weightRecency*(days/g.cfg.RecencyMean-1) +
		weightBalance*(balance-g.cfg.BalanceMu)/g.cfg.BalanceSigma

	label := 0
	if g.unit.Rand() < sigmoid(z) {
		label = 1
	}

	return model.Transaction{
		ID:               id,
		Customer:         c.name,
		Amount:           decimal.NewFromFloat(amount).Round(2),
		TransactionCount: int(count),
		DaysSinceLast:    int(days),
		Balance:          decimal.NewFromFloat(balance).Round(2),
		Label:            label,
	}, nil
}

var names = []string{
	"Acme Stores", "Bluefin Foods", "Cedar Pharmacy", "Delta Freight",
	"Eastgate Motors", "Fairway Hotels", "Granite Works", "Harbor Fuel",
	"Ivory Textiles", "Juniper Clinic", "Keystone Farms", "Lakeside Media",
}

func customerName(i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s %d", names[i%len(names)], i/len(names)+1)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
