package contact

import "fmt"

// ItemBrief is a {key, type} summary used where a full entity is
// unnecessary: creation responses, listings, counts.
type ItemBrief struct {
	Key  int64  `json:"key"`
	Type string `json:"type"`
}

// BriefOf summarizes any persistent item as its key and description.
func BriefOf(item SurrogatedItem) ItemBrief {
	return ItemBrief{Key: item.GetKey(), Type: item.Description()}
}

// CountBrief carries an entity count in brief form.
func CountBrief(count int64) ItemBrief {
	return ItemBrief{Key: count, Type: "Contact.count"}
}

func (b ItemBrief) String() string {
	return fmt.Sprintf("%s = %d", b.Type, b.Key)
}
