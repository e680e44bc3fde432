package render

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNumber renders a count compactly: 1.2M, 3.4K, or the plain integer.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Count renders n with locale digit grouping.
func (l Locale) Count(n int64) string {
	return l.printer.Sprintf("%d", n)
}

// OptionalCount renders an absent count as zero.
func (l Locale) OptionalCount(n *int) string {
	if n == nil {
		return "0"
	}
	return l.Count(int64(*n))
}

// Percent renders a 0..1 fraction with one decimal.
func (l Locale) Percent(rate *float64) string {
	if rate == nil {
		return l.Msgs.NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *rate*100)
}

// RatingBadge renders an item's average rating with a star.
func (l Locale) RatingBadge(rating *float64) string {
	if rating == nil {
		return l.Msgs.Unrated
	}
	return fmt.Sprintf("%.1f ★", *rating)
}

// Average renders the catalog-wide average rating with two decimals.
func (l Locale) Average(rating *float64) string {
	if rating == nil {
		return l.Msgs.NotAvailable
	}
	return fmt.Sprintf("%.2f", *rating)
}

// Thousands rounds to the nearest thousand with a K suffix, without grouping.
func (l Locale) Thousands(n *int64) string {
	if n == nil {
		return l.Msgs.NotAvailable
	}
	return strconv.FormatInt(int64(math.Round(float64(*n)/1000)), 10) + "K"
}
