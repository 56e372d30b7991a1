package session

// SlotKey names the durable storage slot for one session's serialized
// identity+token pair.
func SlotKey(prefix, tokenID string) string {
	return prefix + ":" + tokenID
}
