package game

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/adil14788/Epic-game/params"
)

var ErrInvalidRoster = errors.New("invalid roster")

// Roster is everything MyEpicGame's constructor takes: the playable
// characters and the boss they fight.
type Roster struct {
	Names            []string `mapstructure:"names" yaml:"names" json:"names"`
	ImageURIs        []string `mapstructure:"image_uris" yaml:"image_uris" json:"imageURIs"`
	HP               []int64  `mapstructure:"hp" yaml:"hp" json:"hp"`
	AttackDamage     []int64  `mapstructure:"attack_damage" yaml:"attack_damage" json:"attackDamage"`
	BossName         string   `mapstructure:"boss_name" yaml:"boss_name" json:"bossName"`
	BossImageURI     string   `mapstructure:"boss_image_uri" yaml:"boss_image_uri" json:"bossImageURI"`
	BossHP           int64    `mapstructure:"boss_hp" yaml:"boss_hp" json:"bossHP"`
	BossAttackDamage int64    `mapstructure:"boss_attack_damage" yaml:"boss_attack_damage" json:"bossAttackDamage"`
}

func DefaultRoster() Roster {
	return Roster{
		Names:            append([]string(nil), params.CharacterNames...),
		ImageURIs:        append([]string(nil), params.CharacterImageURIs...),
		HP:               append([]int64(nil), params.CharacterHP...),
		AttackDamage:     append([]int64(nil), params.CharacterAttackDamage...),
		BossName:         params.BossName,
		BossImageURI:     params.BossImageURI,
		BossHP:           params.BossHP.Int64(),
		BossAttackDamage: params.BossAttackDamage.Int64(),
	}
}

func (r Roster) Validate() error {
	n := len(r.Names)
	if n == 0 {
		return fmt.Errorf("%w: no characters", ErrInvalidRoster)
	}
	if len(r.ImageURIs) != n || len(r.HP) != n || len(r.AttackDamage) != n {
		return fmt.Errorf("%w: %d names, %d images, %d hp, %d attack damage values",
			ErrInvalidRoster, n, len(r.ImageURIs), len(r.HP), len(r.AttackDamage))
	}
	for i := 0; i < n; i++ {
		if r.Names[i] == "" {
			return fmt.Errorf("%w: character %d has no name", ErrInvalidRoster, i)
		}
		if r.HP[i] <= 0 || r.AttackDamage[i] <= 0 {
			return fmt.Errorf("%w: character %q has hp=%d attack=%d",
				ErrInvalidRoster, r.Names[i], r.HP[i], r.AttackDamage[i])
		}
	}
	if r.BossName == "" {
		return fmt.Errorf("%w: boss has no name", ErrInvalidRoster)
	}
	if r.BossHP <= 0 || r.BossAttackDamage <= 0 {
		return fmt.Errorf("%w: boss has hp=%d attack=%d", ErrInvalidRoster, r.BossHP, r.BossAttackDamage)
	}
	return nil
}

// ConstructorArgs returns the eight constructor values in ABI order.
func (r Roster) ConstructorArgs() []interface{} {
	return []interface{}{
		r.Names,
		r.ImageURIs,
		bigs(r.HP),
		bigs(r.AttackDamage),
		r.BossName,
		r.BossImageURI,
		big.NewInt(r.BossHP),
		big.NewInt(r.BossAttackDamage),
	}
}

func bigs(vs []int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}
