package ledger

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// SortKey names the field a collection is ordered by.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByName     SortKey = "name"
	SortByStatus   SortKey = "status"
	SortByDistance SortKey = "distance"
	// SortByAmount orders transactions by booked amount; trips treat it as 0.
	SortByAmount SortKey = "amount"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortSpec selects a key and a direction.
type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

// DefaultSort lists the most recent records first.
var DefaultSort = SortSpec{Key: SortByDate, Order: Descending}

// ParseSortSpec validates raw query values. Blank values fall back to
// DefaultSort field by field.
func ParseSortSpec(key, order string) (SortSpec, error) {
	spec := DefaultSort
	if k := SortKey(strings.ToLower(strings.TrimSpace(key))); k != "" {
		switch k {
		case SortByDate, SortByName, SortByStatus, SortByDistance, SortByAmount:
			spec.Key = k
		default:
			return SortSpec{}, fmt.Errorf("%w: unknown sort key %q", domain.ErrValidation, key)
		}
	}
	if o := SortOrder(strings.ToLower(strings.TrimSpace(order))); o != "" {
		switch o {
		case Ascending, Descending:
			spec.Order = o
		default:
			return SortSpec{}, fmt.Errorf("%w: unknown sort order %q", domain.ErrValidation, order)
		}
	}
	return spec, nil
}

// SortTrips returns a stably sorted copy of trips. The status key uses
// DeriveStatus at now. Missing dates and names sort as 0 and "".
func SortTrips(trips []domain.Trip, spec SortSpec, now time.Time) []domain.Trip {
	return sortStable(trips, spec, func(t domain.Trip) sortValue {
		switch spec.Key {
		case SortByDate:
			return numberValue(epochMillis(t.StartDate))
		case SortByName:
			return stringValue(t.Name)
		case SortByStatus:
			return stringValue(string(DeriveStatus(t, now)))
		case SortByDistance:
			return numberValue(t.DistanceMiles)
		}
		return numberValue(0)
	})
}

// SortTransactions returns a stably sorted copy of txs. Name orders by
// description and status by transaction type.
func SortTransactions(txs []domain.Transaction, spec SortSpec) []domain.Transaction {
	return sortStable(txs, spec, func(tx domain.Transaction) sortValue {
		switch spec.Key {
		case SortByDate:
			return numberValue(epochMillis(tx.Date))
		case SortByName:
			return stringValue(tx.Description)
		case SortByStatus:
			return stringValue(string(tx.Type))
		case SortByAmount:
			return numberValue(tx.Amount.InexactFloat64())
		}
		return numberValue(0)
	})
}

// sortValue is an extracted key: either a lower-cased string or a number.
type sortValue struct {
	str   string
	num   float64
	isStr bool
}

func stringValue(s string) sortValue { return sortValue{str: strings.ToLower(s), isStr: true} }
func numberValue(n float64) sortValue { return sortValue{num: n} }

func epochMillis(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixMilli())
}

type keyed[T any] struct {
	rec T
	key sortValue
}

// sortStable extracts every key once, then sorts. Descending flips the
// comparator sign, not the output, so equal keys stay in input order.
func sortStable[T any](records []T, spec SortSpec, key func(T) sortValue) []T {
	items := make([]keyed[T], len(records))
	for i, r := range records {
		items[i] = keyed[T]{rec: r, key: key(r)}
	}

	// Collators keep scratch buffers, so each call gets its own.
	col := collate.New(language.English)
	sign := 1
	if spec.Order == Descending {
		sign = -1
	}

	slices.SortStableFunc(items, func(a, b keyed[T]) int {
		var c int
		if a.key.isStr || b.key.isStr {
			c = col.CompareString(a.key.str, b.key.str)
		} else {
			c = cmp.Compare(a.key.num, b.key.num)
		}
		return sign * c
	})

	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}
