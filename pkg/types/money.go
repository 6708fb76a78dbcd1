package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidMoney возвращается при разборе некорректной денежной суммы
	ErrInvalidMoney = errors.New("types: invalid money amount")

	// ErrMoneyOverflow возвращается, когда результат не помещается в int64
	ErrMoneyOverflow = errors.New("types: money amount overflows")
)

// Money денежная сумма в минимальных единицах валюты (центах).
// Все вычисления цены ведутся в целых числах, без float.
type Money int64

// Cents создает сумму из количества центов
func Cents(c int64) Money { return Money(c) }

// ParseMoney разбирает десятичную запись суммы: "25", "19.99", "0.5".
// Больше двух знаков после точки не допускается.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidMoney)
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || units > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

// Cents возвращает сумму в центах
func (m Money) Cents() int64 { return int64(m) }

// Mul умножает сумму на целое количество (например, дней аренды).
// При выходе за пределы int64 возвращает ErrMoneyOverflow
func (m Money) Mul(n int) (Money, error) {
	if m == 0 || n == 0 {
		return 0, nil
	}

	result := m * Money(n)
	if result/Money(n) != m || (n == -1 && m == math.MinInt64) {
		return 0, fmt.Errorf("%w: %d * %d", ErrMoneyOverflow, int64(m), n)
	}
	return result, nil
}

// IsPositive true для строго положительной суммы
func (m Money) IsPositive() bool { return m > 0 }

// IsNegative true для отрицательной суммы
func (m Money) IsNegative() bool { return m < 0 }

// String форматирует сумму с двумя знаками после точки: 1999 -> "19.99"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
