package subtensor

// Extrinsic submissions. Each returns the extrinsic hash on inclusion.
// None of these are retried: a timeout does not mean the extrinsic failed,
// and a blind resubmit could double-apply it.

// Transfer moves TAO between coldkeys.
func (c *Client) Transfer(params TransferParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/transfer", params)
}

// EstimateTransferFee asks the gateway for the fee of a transfer without
// submitting it.
func (c *Client) EstimateTransferFee(params TransferParams) (RaoAmountResponse, error) {
	return postJSON[int64](c.client, "/chain/transfer-fee", params)
}

// AddStake stakes TAO from the signer's coldkey to a hotkey on one subnet.
func (c *Client) AddStake(params AddStakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/add-stake", params)
}

// RemoveStake unstakes from a hotkey back to the signer's coldkey.
func (c *Client) RemoveStake(params RemoveStakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/remove-stake", params)
}

// SwapHotkey rewrites hotkey ownership from the signer's hotkey to the
// destination, across all subnets or scoped by params.Netuid.
func (c *Client) SwapHotkey(params SwapHotkeyParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/swap-hotkey", params)
}

// RegisterNeuron performs a burned registration on a subnet.
func (c *Client) RegisterNeuron(params RegisterNeuronParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/register-neuron", params)
}

// RegisterSubnet creates a new subnet owned by the signer.
func (c *Client) RegisterSubnet(params RegisterSubnetParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/register-subnet", params)
}

// RootRegister registers the signer's hotkey on the root network.
func (c *Client) RootRegister(params RootRegisterParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/root-register", params)
}

// SetRootWeights sets the signer's root network weights over subnets.
func (c *Client) SetRootWeights(params SetRootWeightsParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-root-weights", params)
}

// SetWeights sets the subnet weights and returns the extrinsic hash.
func (c *Client) SetWeights(params SetWeightsParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-weights", params)
}

// CommitWeights publishes a weight commitment hash.
func (c *Client) CommitWeights(params CommitWeightsParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/commit-weights", params)
}

// RevealWeights reveals previously committed weights.
func (c *Client) RevealWeights(params RevealWeightsParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/reveal-weights", params)
}

// SetChildren replaces the child hotkey set for (hotkey, netuid).
func (c *Client) SetChildren(params SetChildrenParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-children", params)
}

// SetChildkeyTake sets the take a child hotkey charges its parents.
func (c *Client) SetChildkeyTake(params SetChildkeyTakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-childkey-take", params)
}

// Nominate registers the signer's hotkey as a delegate.
func (c *Client) Nominate(params NominateParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/nominate", params)
}

// SetDelegateTake updates the signer delegate's take.
func (c *Client) SetDelegateTake(params SetDelegateTakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-delegate-take", params)
}

// DelegateStake stakes to a delegate hotkey.
func (c *Client) DelegateStake(params DelegateStakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/delegate-stake", params)
}

// UndelegateStake removes stake from a delegate hotkey.
func (c *Client) UndelegateStake(params UndelegateStakeParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/undelegate-stake", params)
}

// VoteSenate casts the signer's senate vote on a proposal.
func (c *Client) VoteSenate(params VoteSenateParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/senate-vote", params)
}

// SudoSetHyperparam sets one subnet hyperparameter.
func (c *Client) SudoSetHyperparam(params SudoSetHyperparamParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/sudo-set-hyperparam", params)
}
