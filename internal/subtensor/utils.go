package subtensor

// FindUIDByHotkey returns the UID holding the hotkey in this metagraph, or
// -1 when the hotkey is not registered.
func FindUIDByHotkey(metagraph *SubnetMetagraph, hotkey string) int {
	for uid, currHotkey := range metagraph.Hotkeys {
		if currHotkey == hotkey {
			return uid
		}
	}
	return -1
}

// FindAxonByHotkey returns the axon served by the hotkey, if any.
func FindAxonByHotkey(metagraph *SubnetMetagraph, hotkey string) *AxonInfo {
	uid := FindUIDByHotkey(metagraph, hotkey)
	if uid < 0 || uid >= len(metagraph.Axons) {
		return nil
	}
	axon := metagraph.Axons[uid]
	return &axon
}

// ColdkeyForHotkey returns the coldkey owning the hotkey in this metagraph,
// or the empty string when the hotkey is not registered.
func ColdkeyForHotkey(metagraph *SubnetMetagraph, hotkey string) string {
	uid := FindUIDByHotkey(metagraph, hotkey)
	if uid < 0 || uid >= len(metagraph.Coldkeys) {
		return ""
	}
	return metagraph.Coldkeys[uid]
}
