package subtensor

import "fmt"

// GetLatestBlock retrieves the latest block details from the chain.
func (c *Client) GetLatestBlock() (LatestBlockResponse, error) {
	return getJSON[LatestBlock](c.client, "/chain/latest-block")
}

// GetMetagraph fetches the subnet metagraph for the given netuid.
func (c *Client) GetMetagraph(netuid int) (SubnetMetagraphResponse, error) {
	path := fmt.Sprintf("/chain/subnet-metagraph/%d", netuid)
	return getJSON[SubnetMetagraph](c.client, path)
}

// GetSubnets lists all subnets with their one-line summaries.
func (c *Client) GetSubnets() (SubnetInfoListResponse, error) {
	return getJSON[[]SubnetInfo](c.client, "/chain/subnets")
}

// GetSubnetHyperparams fetches the subnet hyperparams for the given netuid.
func (c *Client) GetSubnetHyperparams(netuid int) (SubnetHyperparamsResponse, error) {
	path := fmt.Sprintf("/chain/subnet-hyperparameters/%d", netuid)
	return getJSON[SubnetHyperparams](c.client, path)
}

// GetSubnetLockCost returns the current cost in rao of registering a subnet.
func (c *Client) GetSubnetLockCost() (RaoAmountResponse, error) {
	return getJSON[int64](c.client, "/chain/subnet-lock-cost")
}

// GetBalance fetches the account balance for a coldkey address.
func (c *Client) GetBalance(ss58 string) (AccountBalanceResponse, error) {
	path := fmt.Sprintf("/chain/balance/%s", ss58)
	return getJSON[AccountBalance](c.client, path)
}

// GetStakeInfo lists every stake position held by a coldkey address.
func (c *Client) GetStakeInfo(coldkeySS58 string) (StakeInfoListResponse, error) {
	path := fmt.Sprintf("/chain/stake-info/%s", coldkeySS58)
	return getJSON[[]StakeInfo](c.client, path)
}

// GetChildren fetches the child hotkeys set for (hotkey, netuid).
func (c *Client) GetChildren(hotkeySS58 string, netuid int) (ChildrenResponse, error) {
	path := fmt.Sprintf("/chain/children/%s/%d", hotkeySS58, netuid)
	return getJSON[[]ChildInfo](c.client, path)
}

// GetChildkeyTake fetches the childkey take for (hotkey, netuid).
func (c *Client) GetChildkeyTake(hotkeySS58 string, netuid int) (ChildkeyTakeResponse, error) {
	path := fmt.Sprintf("/chain/childkey-take/%s/%d", hotkeySS58, netuid)
	return getJSON[ChildkeyTake](c.client, path)
}

// GetDelegates lists all registered delegates.
func (c *Client) GetDelegates() (DelegateListResponse, error) {
	return getJSON[[]DelegateInfo](c.client, "/chain/delegates")
}

// GetDelegated lists the delegates a coldkey has stake with.
func (c *Client) GetDelegated(coldkeySS58 string) (DelegatedListResponse, error) {
	path := fmt.Sprintf("/chain/delegated/%s", coldkeySS58)
	return getJSON[[]DelegatedInfo](c.client, path)
}

// GetRootWeights fetches the weight rows of all root validators.
func (c *Client) GetRootWeights() (RootWeightsResponse, error) {
	return getJSON[[]RootWeightEntry](c.client, "/chain/root-weights")
}

// GetSenateMembers lists the senate member addresses.
func (c *Client) GetSenateMembers() (SenateMembersResponse, error) {
	return getJSON[[]string](c.client, "/chain/senate-members")
}

// GetProposals lists the open senate proposals.
func (c *Client) GetProposals() (ProposalListResponse, error) {
	return getJSON[[]Proposal](c.client, "/chain/proposals")
}

// CheckHotkey reports whether the hotkey is registered on the subnet.
func (c *Client) CheckHotkey(netuid int, hotkeySS58 string) (CheckHotkeyResponse, error) {
	path := fmt.Sprintf("/chain/check-hotkey/%d/%s", netuid, hotkeySS58)
	return getJSON[CheckHotkey](c.client, path)
}
