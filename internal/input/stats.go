package input

import (
	"github.com/aegonwolf/substack/internal/record"
	"github.com/tidwall/gjson"
)

// PublicationStats reads subscriber_counts.json. Rows without a
// publication_url are skipped; a missing subscriber_count reads as 0.
func (l *Loader) PublicationStats(path string) ([]record.PublicationStat, error) {
	_, stats, err := l.SubscriberTable(path)
	return stats, err
}

// SubscriberTable reads subscriber_counts.json and returns every row object
// as read, together with the parsed stats of the rows that have a
// publication_url.
func (l *Loader) SubscriberTable(path string) ([]gjson.Result, []record.PublicationStat, error) {
	rows, skipped, err := l.readRows(path)
	if err != nil {
		return nil, nil, err
	}

	stats := make([]record.PublicationStat, 0, len(rows))
	for _, row := range rows {
		url := row.Get("publication_url").String()
		if url == "" {
			skipped++
			continue
		}
		stats = append(stats, record.PublicationStat{
			PublicationURL:  url,
			SubscriberCount: row.Get("subscriber_count").Int(),
		})
	}

	l.report("subscriber counts", path, len(stats), skipped)
	return rows, stats, nil
}

// CategoryStats reads categories.json. Rows without a category are skipped;
// missing numeric fields read as 0.
func (l *Loader) CategoryStats(path string) ([]record.CategoryStat, error) {
	rows, skipped, err := l.readRows(path)
	if err != nil {
		return nil, err
	}

	stats := make([]record.CategoryStat, 0, len(rows))
	for _, row := range rows {
		name := row.Get("category").String()
		if name == "" {
			skipped++
			continue
		}
		stats = append(stats, record.CategoryStat{
			Category:          name,
			MeanSubscribers:   row.Get("mean_subscriber_count").Float(),
			MedianSubscribers: row.Get("median_subscriber_count").Float(),
			MaxSubscribers:    row.Get("max_subscriber_count").Float(),
			Outgoing:          row.Get("outgoing").Float(),
			Incoming:          row.Get("incoming").Float(),
		})
	}

	l.report("category statistics", path, len(stats), skipped)
	return stats, nil
}
