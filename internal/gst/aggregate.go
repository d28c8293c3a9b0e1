package gst

import "sort"

// TaxBucket accumulates taxable value and tax split across all lines
// sharing an (HSN code, GST rate) key. Buckets feed statutory reports
// (GSTR-1 rate-wise summaries); they never drive per-line computation.
type TaxBucket struct {
	HSNCode string
	GSTRate float64
	Taxable Paise
	CGST    Paise
	SGST    Paise
	IGST    Paise
}

// Totals are the invoice-level sums, each independently accumulated from
// already-rounded per-line results. They are never derived by applying a
// rate to an aggregate, because lines may carry different rates.
type Totals struct {
	Taxable Paise
	Tax     Paise
	Grand   Paise
}

// Computation is the result of aggregating an invoice's lines.
type Computation struct {
	Lines   []LineComputed
	Buckets []TaxBucket
	Totals  Totals
}

// bucketAcc carries rupee-valued running sums that are re-rounded after
// every addition. Bucket-level rounding is independent from line-level
// rounding, so a bucket may differ from the sum of already-rounded line
// values by up to one paisa. That drift is accepted statutory-report
// behavior, not a defect; forcing bucket sums to equal line sums would
// break the line-level reconciliation instead.
type bucketAcc struct {
	hsn     string
	rate    float64
	taxable float64
	cgst    float64
	sgst    float64
	igst    float64
}

func (b *bucketAcc) add(line LineComputed) {
	b.taxable = Round2(b.taxable + line.Taxable.Rupees()).Rupees()
	b.cgst = Round2(b.cgst + line.CGST.Rupees()).Rupees()
	b.sgst = Round2(b.sgst + line.SGST.Rupees()).Rupees()
	b.igst = Round2(b.igst + line.IGST.Rupees()).Rupees()
}

// Aggregate computes every line, folds the results into invoice totals and
// per-(HSN, rate) tax buckets, and returns the lot. Pure and stateless:
// safe to call concurrently for unrelated invoices.
func Aggregate(lines []LineInput, j Jurisdiction) (Computation, error) {
	if !ValidStateCode(j.SellerStateCode) || !ValidStateCode(j.BuyerStateCode) {
		return Computation{}, ErrInvalidStateCode
	}

	comp := Computation{Lines: make([]LineComputed, 0, len(lines))}
	accs := make(map[bucketKey]*bucketAcc)

	for _, in := range lines {
		line, err := ComputeLine(in, j)
		if err != nil {
			return Computation{}, err
		}
		comp.Lines = append(comp.Lines, line)

		comp.Totals.Taxable += line.Taxable
		comp.Totals.Tax += line.Tax
		comp.Totals.Grand += line.Total

		key := bucketKey{hsn: line.HSNCode, rate: line.GSTRate}
		acc, ok := accs[key]
		if !ok {
			acc = &bucketAcc{hsn: key.hsn, rate: key.rate}
			accs[key] = acc
		}
		acc.add(line)
	}

	comp.Buckets = make([]TaxBucket, 0, len(accs))
	for _, acc := range accs {
		comp.Buckets = append(comp.Buckets, TaxBucket{
			HSNCode: acc.hsn,
			GSTRate: acc.rate,
			Taxable: Round2(acc.taxable),
			CGST:    Round2(acc.cgst),
			SGST:    Round2(acc.sgst),
			IGST:    Round2(acc.igst),
		})
	}

	// Explicit tie-break so repeated runs emit byte-identical reports.
	sort.Slice(comp.Buckets, func(a, b int) bool {
		if comp.Buckets[a].GSTRate != comp.Buckets[b].GSTRate {
			return comp.Buckets[a].GSTRate < comp.Buckets[b].GSTRate
		}
		return comp.Buckets[a].HSNCode < comp.Buckets[b].HSNCode
	})
	return comp, nil
}

type bucketKey struct {
	hsn  string
	rate float64
}

// BucketComputed folds already-computed lines into (HSN, rate) buckets
// using the same running re-rounding as Aggregate. Used by period reports
// that read stored line values back instead of recomputing them.
func BucketComputed(lines []LineComputed) []TaxBucket {
	accs := make(map[bucketKey]*bucketAcc)
	for _, line := range lines {
		key := bucketKey{hsn: line.HSNCode, rate: line.GSTRate}
		acc, ok := accs[key]
		if !ok {
			acc = &bucketAcc{hsn: key.hsn, rate: key.rate}
			accs[key] = acc
		}
		acc.add(line)
	}

	buckets := make([]TaxBucket, 0, len(accs))
	for _, acc := range accs {
		buckets = append(buckets, TaxBucket{
			HSNCode: acc.hsn,
			GSTRate: acc.rate,
			Taxable: Round2(acc.taxable),
			CGST:    Round2(acc.cgst),
			SGST:    Round2(acc.sgst),
			IGST:    Round2(acc.igst),
		})
	}
	sort.Slice(buckets, func(a, b int) bool {
		if buckets[a].GSTRate != buckets[b].GSTRate {
			return buckets[a].GSTRate < buckets[b].GSTRate
		}
		return buckets[a].HSNCode < buckets[b].HSNCode
	})
	return buckets
}
