// Package ledger holds the two pieces of mutable progression state a session
// owns: the data economy and the discovery record.
package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/ericogr/technonomicon/internal/game"
)

var (
	ErrInsufficientResources = errors.New("insufficient data")
	ErrUnknownSource         = errors.New("unknown data source")
	ErrUnknownCollector      = errors.New("unknown collector item")
	ErrSurveillanceInactive  = errors.New("surveillance system is not active")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidSnapshot       = errors.New("invalid ledger snapshot")
)

// InsufficientResourceError reports a debit the balance cannot cover.
type InsufficientResourceError struct {
	Need int
	Have int
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("insufficient data: need %d, have %d", e.Need, e.Have)
}

func (e *InsufficientResourceError) Unwrap() error { return ErrInsufficientResources }

// Source categorizes where harvested data came from.
type Source string

const (
	SourceEnemySurveillance  Source = "enemy_surveillance"
	SourceEnvironmentalScans Source = "environmental_scans"
	SourceTerminalExtracts   Source = "terminal_extracts"
	SourceMinedBitcoin       Source = "mined_bitcoin"
)

// Sources lists every data source in display order.
var Sources = []Source{SourceEnemySurveillance, SourceEnvironmentalScans, SourceTerminalExtracts, SourceMinedBitcoin}

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSource, s)
}

// collectorWeights is the additive multiplier each owned item contributes.
var collectorWeights = map[string]float64{
	"heat_sensor":         0.05,
	"moisture_sensor":     0.05,
	"ir_scanner":          0.08,
	"density_tester":      0.06,
	"microscopic_sampler": 0.10,
}

// CollectorItems returns the known collector item names.
func CollectorItems() []string {
	return []string{"heat_sensor", "moisture_sensor", "ir_scanner", "density_tester", "microscopic_sampler"}
}

// ResourceLedger tracks the data balance. The balance never goes negative;
// Debit is the only operation crafting performs on it.
type ResourceLedger struct {
	Balance            int
	Sources            map[Source]int
	Collectors         map[string]int
	SurveillanceActive bool
}

func NewResourceLedger() *ResourceLedger {
	l := &ResourceLedger{
		Sources:    make(map[Source]int, len(Sources)),
		Collectors: make(map[string]int, len(collectorWeights)),
	}
	for _, s := range Sources {
		l.Sources[s] = 0
	}
	for _, c := range CollectorItems() {
		l.Collectors[c] = 0
	}
	return l
}

// Multiplier is 1 plus every owned collector's weight plus a level bonus of
// 0.1 per ten levels.
func (l *ResourceLedger) Multiplier(c game.Character) float64 {
	m := 1.0
	for _, item := range CollectorItems() {
		m += float64(l.Collectors[item]) * collectorWeights[item]
	}
	m += float64(c.Level) / 10 * 0.1
	return m
}

// Harvest credits floor(base * multiplier) to a non-enemy source.
func (l *ResourceLedger) Harvest(source Source, base int, c game.Character) (int, error) {
	if _, err := ParseSource(string(source)); err != nil {
		return 0, err
	}
	if source == SourceEnemySurveillance {
		return 0, fmt.Errorf("%w: enemy data is harvested through surveillance", ErrUnknownSource)
	}
	if base < 0 {
		return 0, ErrNegativeAmount
	}
	amount := int(math.Floor(float64(base) * l.Multiplier(c)))
	l.credit(source, amount)
	return amount, nil
}

// HarvestEnemy credits floor(enemyLevel * 10 * efficiency) from a defeated
// enemy. Efficiency defaults to 1 when not positive.
func (l *ResourceLedger) HarvestEnemy(enemyLevel int, efficiency float64) (int, error) {
	if !l.SurveillanceActive {
		return 0, ErrSurveillanceInactive
	}
	if enemyLevel < 0 {
		return 0, ErrNegativeAmount
	}
	if efficiency <= 0 {
		efficiency = 1
	}
	amount := int(math.Floor(float64(enemyLevel*10) * efficiency))
	l.credit(SourceEnemySurveillance, amount)
	return amount, nil
}

func (l *ResourceLedger) credit(source Source, amount int) {
	l.Sources[source] += amount
	l.Balance += amount
}

// CollectItem adds one collector item and returns the new count.
func (l *ResourceLedger) CollectItem(item string) (int, error) {
	if _, ok := collectorWeights[item]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCollector, item)
	}
	l.Collectors[item]++
	return l.Collectors[item], nil
}

func (l *ResourceLedger) ActivateSurveillance() {
	l.SurveillanceActive = true
}

func (l *ResourceLedger) CanAfford(cost int) bool {
	return cost <= l.Balance
}

// Debit removes cost from the balance or returns an
// *InsufficientResourceError leaving the ledger untouched.
func (l *ResourceLedger) Debit(cost int) error {
	if cost < 0 {
		return ErrNegativeAmount
	}
	if !l.CanAfford(cost) {
		return &InsufficientResourceError{Need: cost, Have: l.Balance}
	}
	l.Balance -= cost
	return nil
}

// Deposit credits an exact amount to a source, bypassing the multiplier.
// Save imports and scripted setups use it.
func (l *ResourceLedger) Deposit(source Source, amount int) error {
	if _, err := ParseSource(string(source)); err != nil {
		return err
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.credit(source, amount)
	return nil
}
