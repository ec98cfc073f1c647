package domain

// LineItemTotal derives a line item's effective total. When both quantity
// and unit price are present the total is their product; otherwise the
// stored total stands as a manual amount. The input is never mutated.
func LineItemTotal(item LineItem) float64 {
	if item.Quantity != nil && item.UnitPrice != nil {
		return *item.Quantity * *item.UnitPrice
	}
	return item.Total
}

// EstimateTotals derives an estimate's subtotal and total from its line
// items and tax. Plain floating-point summation; currency rounding belongs
// to the presentation boundary. Negative amounts pass through so discounts
// and credits can be expressed as line items.
func EstimateTotals(items []LineItem, tax *float64) (subtotal, total float64) {
	for _, item := range items {
		subtotal += LineItemTotal(item)
	}
	total = subtotal
	if tax != nil {
		total += *tax
	}
	return subtotal, total
}
