package vm

// spriteWidth is the width in pixels of a sprite row.
const spriteWidth = 8

// drawSprite XORs the sprite of the given number of rows read from memory
// at the index register onto the display at x,y. Coordinates wrap around
// the screen edges. VF is set to 1 if any lit pixel was turned off.
func (m *Machine) drawSprite(x, y, rows uint8) {
	collision := false

	for row := uint16(0); row < uint16(rows); row++ {
		data := m.ReadMemory(m.index + row)
		py := (uint16(y) + row) % ScreenHeight

		for col := uint16(0); col < spriteWidth; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}
			px := (uint16(x) + col) % ScreenWidth

			pixel := &m.display[px+ScreenWidth*py]
			if *pixel {
				collision = true
			}
			*pixel = !*pixel
		}
	}

	m.registers[flagRegister] = boolToByte(collision)
}
