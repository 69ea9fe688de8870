package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
)

// ChainQuerier is the slice of the gateway client the dashboard reads from.
type ChainQuerier interface {
	GetLatestBlock() (subtensor.LatestBlockResponse, error)
	GetSubnets() (subtensor.SubnetInfoListResponse, error)
	GetMetagraph(netuid int) (subtensor.SubnetMetagraphResponse, error)
	GetBalance(ss58 string) (subtensor.AccountBalanceResponse, error)
	GetStakeInfo(coldkeySS58 string) (subtensor.StakeInfoListResponse, error)
}

// WalletRef names the coldkey whose balance and stake positions the page shows.
type WalletRef struct {
	Name    string
	Coldkey string
}

// SubnetRow is one subnet in the overview table, priced in TAO.
type SubnetRow struct {
	Netuid    int             `json:"netuid"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Price     float64         `json:"price"`
	MarketCap float64         `json:"marketCap"`
	Emission  float64         `json:"emission"`
	AlphaOut  float64         `json:"alphaOut"`
	NumUids   int             `json:"numUids"`
	MaxUids   int             `json:"maxUids"`
	YourStake balance.Balance `json:"yourStake"`
}

// StakeRow is one of the wallet's stake positions. Amount is alpha on the
// position's subnet; Value is its TAO value at the current pool price.
type StakeRow struct {
	Netuid       int             `json:"netuid"`
	Hotkey       string          `json:"hotkey"`
	Amount       balance.Balance `json:"amount"`
	Value        balance.Balance `json:"value"`
	Emission     balance.Balance `json:"emission"`
	IsRegistered bool            `json:"isRegistered"`
}

// WalletView is the wallet summary card.
type WalletView struct {
	Name        string          `json:"name"`
	Coldkey     string          `json:"coldkey"`
	Free        balance.Balance `json:"free"`
	TotalStaked balance.Balance `json:"totalStaked"`
	Stakes      []StakeRow      `json:"stakes"`
}

// Snapshot is one complete, consistent view of the network as served. The
// refresher only ever swaps in whole snapshots, so readers never see a view
// where half the fields come from a newer block than the rest.
type Snapshot struct {
	Network   string                     `json:"network"`
	Block     int                        `json:"block"`
	UpdatedAt time.Time                  `json:"updatedAt"`
	Stale     bool                       `json:"stale"`
	Subnets   []SubnetRow                `json:"subnets"`
	Wallet    *WalletView                `json:"wallet,omitempty"`
	Metagraph *subtensor.SubnetMetagraph `json:"metagraph,omitempty"`
}

// Collector assembles snapshots from the chain gateway.
type Collector struct {
	chain   ChainQuerier
	network string
	netuid  int
	wallet  *WalletRef
}

// NewCollector builds a collector. netuid selects the subnet whose neuron
// table is included in full; pass a negative netuid for the overview only.
// wallet may be nil when no coldkey is being watched.
func NewCollector(chain ChainQuerier, network string, netuid int, wallet *WalletRef) *Collector {
	return &Collector{chain: chain, network: network, netuid: netuid, wallet: wallet}
}

// Collect fetches everything the page shows. Any failed fetch fails the whole
// collect so a partial snapshot can never replace a good one.
func (c *Collector) Collect() (Snapshot, error) {
	blockResp, err := c.chain.GetLatestBlock()
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch latest block: %w", err)
	}

	subnetsResp, err := c.chain.GetSubnets()
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch subnets: %w", err)
	}

	snap := Snapshot{
		Network:   c.network,
		Block:     blockResp.Data.BlockNumber,
		UpdatedAt: time.Now().UTC(),
	}

	var stakes []subtensor.StakeInfo
	if c.wallet != nil && c.wallet.Coldkey != "" {
		balResp, err := c.chain.GetBalance(c.wallet.Coldkey)
		if err != nil {
			return Snapshot{}, fmt.Errorf("fetch balance for %s: %w", c.wallet.Coldkey, err)
		}
		stakeResp, err := c.chain.GetStakeInfo(c.wallet.Coldkey)
		if err != nil {
			return Snapshot{}, fmt.Errorf("fetch stake info for %s: %w", c.wallet.Coldkey, err)
		}
		stakes = stakeResp.Data
		snap.Wallet = buildWalletView(c.wallet, balResp.Data, stakes, subnetsResp.Data)
	}

	snap.Subnets = buildSubnetRows(subnetsResp.Data, stakes)

	if c.netuid >= 0 {
		metaResp, err := c.chain.GetMetagraph(c.netuid)
		if err != nil {
			return Snapshot{}, fmt.Errorf("fetch metagraph for subnet %d: %w", c.netuid, err)
		}
		meta := metaResp.Data
		snap.Metagraph = &meta
	}

	return snap, nil
}

// subnetPrice is the TAO price of one alpha. The root network holds TAO
// directly, so its price is pinned to 1.
func subnetPrice(info subtensor.SubnetInfo) float64 {
	if info.Netuid == 0 {
		return 1
	}
	if info.Price > 0 {
		return info.Price
	}
	if info.AlphaIn > 0 {
		return info.TaoIn / info.AlphaIn
	}
	return 0
}

func buildSubnetRows(infos []subtensor.SubnetInfo, stakes []subtensor.StakeInfo) []SubnetRow {
	stakePerNetuid := make(map[int]int64)
	for _, s := range stakes {
		stakePerNetuid[s.Netuid] += s.Stake
	}

	rows := make([]SubnetRow, 0, len(infos))
	for _, info := range infos {
		price := subnetPrice(info)
		rows = append(rows, SubnetRow{
			Netuid:    info.Netuid,
			Name:      info.Name,
			Symbol:    info.Symbol,
			Price:     price,
			MarketCap: (info.AlphaIn + info.AlphaOut) * price,
			Emission:  info.Emission,
			AlphaOut:  info.AlphaOut,
			NumUids:   info.NumUids,
			MaxUids:   info.MaxUids,
			YourStake: balance.FromRao(stakePerNetuid[info.Netuid]),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].MarketCap > rows[j].MarketCap })
	return rows
}

func buildWalletView(ref *WalletRef, acct subtensor.AccountBalance, stakes []subtensor.StakeInfo, infos []subtensor.SubnetInfo) *WalletView {
	prices := make(map[int]float64, len(infos))
	for _, info := range infos {
		prices[info.Netuid] = subnetPrice(info)
	}

	view := &WalletView{
		Name:    ref.Name,
		Coldkey: ref.Coldkey,
		Free:    balance.FromRao(acct.Free),
	}

	for _, s := range stakes {
		if s.Stake == 0 {
			continue
		}
		amount := balance.FromRao(s.Stake)
		value := balance.FromTao(amount.Tao() * prices[s.Netuid])
		view.TotalStaked += value
		view.Stakes = append(view.Stakes, StakeRow{
			Netuid:       s.Netuid,
			Hotkey:       s.Hotkey,
			Amount:       amount,
			Value:        value,
			Emission:     balance.FromRao(s.Emission),
			IsRegistered: s.IsRegistered,
		})
	}

	return view
}

// State guards the snapshot the handlers serve.
type State struct {
	mu    sync.RWMutex
	snap  Snapshot
	valid bool
}

func NewState() *State {
	return &State{}
}

// Get returns the current snapshot; ok is false until the first successful
// collect lands.
func (s *State) Get() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.valid
}

// Set swaps in a fresh snapshot.
func (s *State) Set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.valid = true
}

// MarkStale flags the held snapshot as out of date without dropping it.
func (s *State) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid {
		s.snap.Stale = true
	}
}
