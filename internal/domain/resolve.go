package domain

// ResolveTargetSlot finds the slot eligible for generation: the lowest-index
// slot with a card placed and no text. The fixed 0,1,2 scan order is what
// enforces past→present→future generation; a later slot can never be targeted
// while an earlier carded-but-textless one exists. Returns ErrNoTargetSlot
// when every slot is either filled or cardless.
func ResolveTargetSlot(slots []Slot) (int, error) {
	for i, s := range slots {
		if s.Card != "" && s.Text == "" {
			return i, nil
		}
	}
	return -1, ErrNoTargetSlot
}
