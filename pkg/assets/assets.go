// Package assets holds the exchange asset model and the pure reconciliation
// core: classification, the name index, manifest merge and the todo report.
// Nothing in this package touches the file system or the network.
package assets

import (
	"github.com/shopspring/decimal"
)

// Network describes one deposit/withdraw network of an asset.
type Network struct {
	Network                 string `json:"network"`
	Coin                    string `json:"coin"`
	Name                    string `json:"name"`
	IsDefault               bool   `json:"isDefault"`
	DepositEnable           bool   `json:"depositEnable"`
	WithdrawEnable          bool   `json:"withdrawEnable"`
	DepositDesc             string `json:"depositDesc,omitempty"`
	WithdrawDesc            string `json:"withdrawDesc,omitempty"`
	SpecialTips             string `json:"specialTips,omitempty"`
	ResetAddressStatus      bool   `json:"resetAddressStatus"`
	AddressRegex            string `json:"addressRegex,omitempty"`
	MemoRegex               string `json:"memoRegex,omitempty"`
	WithdrawFee             Amount `json:"withdrawFee"`
	WithdrawMin             Amount `json:"withdrawMin"`
	WithdrawMax             Amount `json:"withdrawMax"`
	WithdrawIntegerMultiple Amount `json:"withdrawIntegerMultiple"`
	MinConfirm              int    `json:"minConfirm"`
	UnLockConfirm           int    `json:"unLockConfirm"`
	SameAddress             bool   `json:"sameAddress"`
}

// RawAsset is one record of the exchange "all coins" feed.
type RawAsset struct {
	Coin              string    `json:"coin"`
	Name              string    `json:"name"`
	DepositAllEnable  bool      `json:"depositAllEnable"`
	WithdrawAllEnable bool      `json:"withdrawAllEnable"`
	Free              Amount    `json:"free"`
	Locked            Amount    `json:"locked"`
	Freeze            Amount    `json:"freeze"`
	Withdrawing       Amount    `json:"withdrawing"`
	Ipoing            Amount    `json:"ipoing"`
	Ipoable           Amount    `json:"ipoable"`
	Storage           Amount    `json:"storage"`
	IsLegalMoney      bool      `json:"isLegalMoney"`
	Trading           bool      `json:"trading"`
	NetworkList       []Network `json:"networkList"`
}

// Balance is the total amount the account holds of the asset.
func (a RawAsset) Balance() decimal.Decimal {
	return decimal.Sum(a.Free.Decimal, a.Locked.Decimal, a.Freeze.Decimal, a.Withdrawing.Decimal)
}

// ClassifiedAsset is a RawAsset with a lowercase coin and a category.
type ClassifiedAsset struct {
	RawAsset
	Category Category `json:"category"`
}

// RepositoryAsset is a published manifest entry.
type RepositoryAsset struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// NameIndex maps a lowercase coin to its display name.
type NameIndex map[string]string
