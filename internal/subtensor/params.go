package subtensor

// Signer names the wallet the gateway signs with. The gateway resolves both
// names against the shared wallets directory; Hotkey may be empty for
// coldkey-only extrinsics.
type Signer struct {
	Coldkey string `json:"coldkey"`
	Hotkey  string `json:"hotkey,omitempty"`
}

type TransferParams struct {
	Signer    Signer `json:"signer"`
	Dest      string `json:"dest"`
	Amount    int64  `json:"amount"`
	KeepAlive bool   `json:"keepAlive"`
}

type AddStakeParams struct {
	Signer     Signer `json:"signer"`
	Netuid     int    `json:"netuid"`
	HotkeySS58 string `json:"hotkeySs58"`
	Amount     int64  `json:"amount"`
}

type RemoveStakeParams struct {
	Signer     Signer `json:"signer"`
	Netuid     int    `json:"netuid"`
	HotkeySS58 string `json:"hotkeySs58"`
	Amount     int64  `json:"amount"`
}

// SwapHotkeyParams swaps every reference to the signer's hotkey over to
// DestHotkey. A nil Netuid means all subnets; 0 restricts the swap to the
// root network.
type SwapHotkeyParams struct {
	Signer     Signer `json:"signer"`
	DestHotkey string `json:"destHotkey"`
	Netuid     *int   `json:"netuid"`
}

// RegisterNeuronParams is a burned registration on one subnet.
type RegisterNeuronParams struct {
	Signer Signer `json:"signer"`
	Netuid int    `json:"netuid"`
}

// RegisterSubnetParams creates a new subnet, locking the current cost.
type RegisterSubnetParams struct {
	Signer Signer `json:"signer"`
}

type RootRegisterParams struct {
	Signer Signer `json:"signer"`
}

type SetRootWeightsParams struct {
	Signer     Signer `json:"signer"`
	Netuids    []int  `json:"netuids"`
	Weights    []int  `json:"weights"`
	VersionKey int    `json:"versionKey"`
}

type SetWeightsParams struct {
	Signer     Signer `json:"signer"`
	Netuid     int    `json:"netuid"`
	Dests      []int  `json:"dests"`
	Weights    []int  `json:"weights"`
	VersionKey int    `json:"versionKey"`
}

// CommitWeightsParams publishes the weight commitment hash for the
// commit-reveal scheme.
type CommitWeightsParams struct {
	Signer Signer `json:"signer"`
	Netuid int    `json:"netuid"`
	Commit string `json:"commit"`
}

type RevealWeightsParams struct {
	Signer     Signer `json:"signer"`
	Netuid     int    `json:"netuid"`
	Uids       []int  `json:"uids"`
	Weights    []int  `json:"weights"`
	Salt       []int  `json:"salt"`
	VersionKey int    `json:"versionKey"`
}

// ChildSpec assigns a u64-normalized proportion of the parent stake to a
// child hotkey.
type ChildSpec struct {
	ChildSS58  string `json:"childSs58"`
	Proportion uint64 `json:"proportion"`
}

// SetChildrenParams replaces the child set for (hotkey, netuid). An empty
// Children list revokes all children.
type SetChildrenParams struct {
	Signer     Signer      `json:"signer"`
	Netuid     int         `json:"netuid"`
	HotkeySS58 string      `json:"hotkeySs58"`
	Children   []ChildSpec `json:"children"`
}

type SetChildkeyTakeParams struct {
	Signer     Signer `json:"signer"`
	Netuid     int    `json:"netuid"`
	HotkeySS58 string `json:"hotkeySs58"`
	Take       int    `json:"take"`
}

type NominateParams struct {
	Signer Signer `json:"signer"`
}

type SetDelegateTakeParams struct {
	Signer Signer `json:"signer"`
	Take   int    `json:"take"`
}

type DelegateStakeParams struct {
	Signer       Signer `json:"signer"`
	DelegateSS58 string `json:"delegateSs58"`
	Amount       int64  `json:"amount"`
}

type UndelegateStakeParams struct {
	Signer       Signer `json:"signer"`
	DelegateSS58 string `json:"delegateSs58"`
	Amount       int64  `json:"amount"`
}

type VoteSenateParams struct {
	Signer       Signer `json:"signer"`
	ProposalHash string `json:"proposalHash"`
	Index        int    `json:"index"`
	Approve      bool   `json:"approve"`
}

// SudoSetHyperparamParams sets one subnet hyperparameter; the signer must be
// the subnet owner or root.
type SudoSetHyperparamParams struct {
	Signer Signer `json:"signer"`
	Netuid int    `json:"netuid"`
	Param  string `json:"param"`
	Value  string `json:"value"`
}
