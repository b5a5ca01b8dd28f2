package core

// Color names what a screen cell shows rather than a concrete colour.
// Each frontend owns the palette that turns these roles into terminal or
// window colours, so the scene reads the same in all of them.
type Color uint8

const (
	ColorDefault Color = iota
	ColorFrame         // Playfield border
	ColorCloud
	ColorGrass
	ColorGrassTip
	ColorSoil
	ColorPipe
	ColorPipeRim
	ColorAvatar
	ColorAvatarHit // Avatar after a collision
	ColorText      // HUD and panel text
	ColorAlert     // Panel titles
	ColorMuted     // Status notices
)
