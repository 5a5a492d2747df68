package events

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/psat-tools/psat-server/errortypes"
)

// GlobalEventsKey is reserved for page-level events that belong to no single auction.
const GlobalEventsKey = "globalEvents"

// AuctionLogEntry is the ordered event list recorded for one auction.
type AuctionLogEntry struct {
	UniqueAuctionID string
	Events          []AuctionEvent
}

// AuctionLog maps unique auction ids to their events for a single-seller page. Entries
// keep the iteration order a browser would give the same object: array-index keys first
// in ascending numeric order, then every other key in the order it was first written.
type AuctionLog struct {
	Entries []AuctionLogEntry

	// Warnings lists the array elements dropped while decoding.
	Warnings []error
}

// Len returns the number of keys in the log, reserved keys included.
func (l *AuctionLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// UnmarshalJSON decodes an auction log object. Values that are not arrays decode to an
// empty event list and array elements that are not objects are dropped.
func (l *AuctionLog) UnmarshalJSON(data []byte) error {
	entries := make([]AuctionLogEntry, 0)
	index := make(map[string]int)
	var warnings []error

	err := objectEach(data, func(key string, value []byte, dataType jsonparser.ValueType) error {
		entry := AuctionLogEntry{UniqueAuctionID: key}
		if dataType == jsonparser.Array {
			var dropped int
			entry.Events, dropped = decodeEventList(value)
			if dropped > 0 {
				warnings = append(warnings, &errortypes.Warning{
					Message:     fmt.Sprintf("auction %q: dropped %d event(s) that are not JSON objects", key, dropped),
					WarningCode: errortypes.MalformedAuctionEventWarningCode,
				})
			}
		}
		if i, ok := index[key]; ok {
			entries[i] = entry
			return nil
		}
		index[key] = len(entries)
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return err
	}

	sortObjectKeys(entries, func(e AuctionLogEntry) string { return e.UniqueAuctionID })
	l.Entries = entries
	l.Warnings = warnings
	return nil
}

// MultiSellerAuctionLogEntry holds the component auctions run under one parent auction.
type MultiSellerAuctionLogEntry struct {
	ParentAuctionID string
	Auctions        AuctionLog
}

// MultiSellerAuctionLog maps parent auction ids to their component auction logs. Ordering
// follows the same rules as AuctionLog.
type MultiSellerAuctionLog struct {
	Entries []MultiSellerAuctionLogEntry
}

// Warnings collects the decode warnings of every component auction log.
func (l *MultiSellerAuctionLog) Warnings() []error {
	if l == nil {
		return nil
	}
	var warnings []error
	for _, entry := range l.Entries {
		for _, w := range entry.Auctions.Warnings {
			warnings = append(warnings, &errortypes.Warning{
				Message:     fmt.Sprintf("parent auction %q: %v", entry.ParentAuctionID, w),
				WarningCode: errortypes.ReadCode(w),
			})
		}
	}
	return warnings
}

// Len returns the number of parent auctions in the log.
func (l *MultiSellerAuctionLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// UnmarshalJSON decodes a two-level auction log object.
func (l *MultiSellerAuctionLog) UnmarshalJSON(data []byte) error {
	entries := make([]MultiSellerAuctionLogEntry, 0)
	index := make(map[string]int)

	err := objectEach(data, func(key string, value []byte, dataType jsonparser.ValueType) error {
		entry := MultiSellerAuctionLogEntry{ParentAuctionID: key}
		if dataType == jsonparser.Object {
			if err := entry.Auctions.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("parent auction %q: %v", key, err)
			}
		}
		if i, ok := index[key]; ok {
			entries[i] = entry
			return nil
		}
		index[key] = len(entries)
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return err
	}

	sortObjectKeys(entries, func(e MultiSellerAuctionLogEntry) string { return e.ParentAuctionID })
	l.Entries = entries
	return nil
}

func objectEach(data []byte, fn func(key string, value []byte, dataType jsonparser.ValueType) error) error {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return fmt.Errorf("invalid auction log: %v", err)
	}
	if dataType == jsonparser.Null {
		return nil
	}
	if dataType != jsonparser.Object {
		return fmt.Errorf("auction log must be a JSON object, got %s", dataType)
	}

	return jsonparser.ObjectEach(value, func(rawKey []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		key, err := jsonparser.ParseString(rawKey)
		if err != nil {
			return fmt.Errorf("invalid auction log key %q: %v", rawKey, err)
		}
		return fn(key, value, dataType)
	})
}

func decodeEventList(list []byte) ([]AuctionEvent, int) {
	events := make([]AuctionEvent, 0)
	dropped := 0
	jsonparser.ArrayEach(list, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			dropped++
			return
		}
		event, err := DecodeAuctionEvent(value)
		if err != nil {
			dropped++
			return
		}
		events = append(events, event)
	})
	return events, dropped
}

// sortObjectKeys moves array-index keys to the front in ascending numeric order. The sort
// is stable so every other key keeps its insertion position.
func sortObjectKeys[T any](entries []T, keyOf func(T) string) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, aIsIndex := arrayIndex(keyOf(entries[i]))
		b, bIsIndex := arrayIndex(keyOf(entries[j]))
		switch {
		case aIsIndex && bIsIndex:
			return a < b
		default:
			return aIsIndex && !bIsIndex
		}
	})
}

func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, strconv.FormatUint(n, 10) == key
}
