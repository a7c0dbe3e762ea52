package level

// Sfx identifies a sound cue a ruleset raises during a tick. Cues below
// SfxOneshotCount are cleared at the start of every tick; the rest are
// looping cues that persist until explicitly stopped.
type Sfx uint8

const (
	SfxChipLoses Sfx = iota
	SfxChipWins
	SfxTimeOut
	SfxTimeLow
	SfxDerezz
	SfxCantMove
	SfxICCollected
	SfxItemCollected
	SfxBootsStolen
	SfxTeleporting
	SfxDoorOpened
	SfxSocketOpened
	SfxButtonPushed
	SfxTileEmptied
	SfxWallCreated
	SfxTrapEntered
	SfxBombExplodes
	SfxWaterSplash
	SfxOneshotCount

	SfxBlockMoving = SfxOneshotCount
	SfxSkatingForward
	SfxSkatingTurn
	SfxSliding
	SfxSlidewalking
	SfxIcewalking
	SfxWaterwalking
	SfxFirewalking
)

// AddSFX raises a sound cue for the current tick.
func (l *Level) AddSFX(sfx Sfx) { l.SFX |= 1 << uint(sfx) }

// StopSFX silences a looping sound cue.
func (l *Level) StopSFX(sfx Sfx) { l.SFX &^= 1 << uint(sfx) }

// ClearOneshotSFX clears the one-shot prefix of the bitset, called at the
// start of every tick; looping cues (skating, sliding, walking-surface
// ambience) persist across the clear.
func (l *Level) ClearOneshotSFX() {
	var oneshotMask uint32
	for i := Sfx(0); i < SfxOneshotCount; i++ {
		oneshotMask |= 1 << uint(i)
	}
	l.SFX &^= oneshotMask
}
