package params

import "math/big"

// ------------------------------------------------------------
// DEFAULT ROSTER
// ------------------------------------------------------------
//
// The constructor arguments MyEpicGame is deployed with when the
// configuration does not override them. Three playable characters
// and one boss.
// ------------------------------------------------------------

var (
	CharacterNames = []string{"Tony", "Spidy", "Hulk"}

	CharacterImageURIs = []string{
		"https://bit.ly/3uI2t7Z",
		"https://bit.ly/37djmhX",
		"https://bit.ly/37kUPHx",
	}

	CharacterHP           = []int64{300, 250, 450}
	CharacterAttackDamage = []int64{100, 50, 150}

	BossName     = "Thanos"
	BossImageURI = "https://bit.ly/3y6F4NT"
)

var (
	BossHP           = big.NewInt(10000)
	BossAttackDamage = big.NewInt(50)
)

// DefaultMintIndex is the character minted by the deploy script.
const DefaultMintIndex = 0

// DefaultAttacks is how many times the deploy script attacks the boss.
const DefaultAttacks = 2
