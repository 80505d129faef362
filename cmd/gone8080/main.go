package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"gone8080/cpu"
	"gone8080/debugger"
	"gone8080/disasm"
	"gone8080/display"
	"gone8080/romload"
	"gone8080/testmode"
	"gone8080/timing"
)

func main() {
	var (
		disassemble bool
		file        string
		test        bool
		interactive bool
	)

	rootCmd := &cobra.Command{
		Use:   "gone8080",
		Short: "Intel 8080 emulator core targeting the Space Invaders arcade ROM",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("gone8080: -f/--file is required")
			}

			s := cpu.New()
			if err := romload.Into(s, file); err != nil {
				return err
			}

			if disassemble {
				rom, err := romload.Load(file)
				if err != nil {
					return err
				}
				fmt.Print(disasm.String(disasm.Listing(rom, 0, len(rom))))
				return nil
			}

			if test {
				rom, err := romload.Load(file)
				if err != nil {
					return err
				}
				s = cpu.New()
				copy(s.Memory[0x0100:], rom)
				testmode.Boot(s)
				return testmode.Run(s, os.Stdout)
			}

			if interactive {
				return debugger.Run(s)
			}

			driver := timing.New(s)
			go func() {
				if err := driver.Run(); err != nil {
					fmt.Fprintln(os.Stderr, "gone8080:", err)
					os.Exit(1)
				}
			}()

			ebiten.SetWindowSize(256*3, 224*3)
			ebiten.SetWindowTitle("gone8080")
			return ebiten.RunGame(display.NewGame(driver))
		},
	}

	rootCmd.Flags().BoolVarP(&disassemble, "disassemble", "d", false, "dump the textual listing for the ROM and exit")
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "ROM file path")
	rootCmd.Flags().BoolVarP(&test, "test", "t", false, "run in Test Mode Driver against a CP/M-style diagnostic ROM")
	rootCmd.Flags().BoolVar(&interactive, "debug", false, "run the interactive single-step TUI debugger instead of the windowed driver")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gone8080:", err)
		os.Exit(1)
	}
}
