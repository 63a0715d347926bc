// Package runner drives a virtual machine with a frontend at a fixed
// frame pacing.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Frontend displays the machine and provides keypad input.
type Frontend interface {
	// Input returns the keypad changes since the last frame.
	// frontend.ErrQuit ends the run without an error.
	Input() ([]frontend.KeyEvent, error)
	Render(display vm.Display) error
	Beep()
	Close() error
}

// Result summarizes a finished run.
type Result struct {
	Frames       int
	Instructions int
	Beeps        int
}

// Runner loads programs and executes them frame by frame.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	frontend Frontend
}

// New creates a new runner that presents the machine on the given frontend.
func New(logger *log.Logger, fe Frontend) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		frontend: fe,
	}
}

// Execute loads the program named by the options and runs it.
// The frontend is closed on every return path.
func (r *Runner) Execute(ctx context.Context, opts options.Program) (Result, error) {
	program, err := r.loadProgram(opts)
	if err != nil {
		if closeErr := r.frontend.Close(); closeErr != nil {
			r.logger.Error("Closing frontend failed", log.Err(closeErr))
		}
		return Result{}, err
	}

	if !opts.Quiet {
		r.logger.Info("Running CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
			log.String("frontend", opts.Frontend),
		)
	}

	return r.ExecuteWithProgram(ctx, program, opts)
}

func (r *Runner) loadProgram(opts options.Program) ([]byte, error) {
	system := r.detector.Detect(opts)
	if err := r.detector.Validate(system); err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	program, err := r.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return program, nil
}

// ExecuteWithProgram runs an already loaded program image until the frame
// limit is reached, the frontend requests to quit, the context is cancelled
// or the machine faults. The frontend is closed before returning.
func (r *Runner) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program) (result Result, err error) {
	defer func() {
		if closeErr := r.frontend.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing frontend: %w", closeErr)
		}
	}()

	machine := vm.New(r.machineOptions(opts)...)
	if err := machine.Load(program); err != nil {
		return result, fmt.Errorf("loading program into memory: %w", err)
	}

	result, err = r.run(ctx, machine, opts.Pacing)
	if errors.Is(err, frontend.ErrQuit) {
		r.logger.Debug("Quit requested", log.Int("frames", result.Frames))
		return result, nil
	}
	return result, err
}

func (r *Runner) machineOptions(opts options.Program) []vm.Option {
	var machineOpts []vm.Option

	if opts.Seed != 0 {
		rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
		machineOpts = append(machineOpts, vm.WithRandom(func() uint8 {
			return uint8(rng.UintN(256))
		}))
	}

	if opts.Debug {
		machineOpts = append(machineOpts, vm.WithTracer(func(pc uint16, ins vm.Instruction) {
			r.logger.Debug("Executing instruction",
				log.Hex("pc", pc),
				log.Hex("opcode", ins.Opcode),
				log.Stringer("op", ins.Op),
				log.String("mnemonic", ins.Mnemonic()),
				log.String("kind", instructionKind(ins)),
			)
		}))
	}

	return machineOpts
}

// instructionKind classifies an instruction for trace output.
func instructionKind(ins vm.Instruction) string {
	if ins.IsSkip() {
		return "skip"
	}
	return "instruction"
}

// run executes the frame loop. Each frame applies the frontend input,
// executes the configured number of instructions, ticks the timers once
// and renders the display.
func (r *Runner) run(ctx context.Context, machine *vm.Machine, pacing options.Pacing) (Result, error) {
	var result Result

	var frameTick <-chan time.Time
	if pacing.FramesPerSecond > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(pacing.FramesPerSecond))
		defer ticker.Stop()
		frameTick = ticker.C
	}

	for pacing.Frames == 0 || result.Frames < pacing.Frames {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("running program: %w", err)
		}

		if err := r.applyInput(machine); err != nil {
			return result, err
		}

		for range pacing.TicksPerFrame {
			if err := machine.Tick(); err != nil {
				r.logger.Error("Machine halted", log.Err(err))
				return result, fmt.Errorf("executing instruction: %w", err)
			}
			result.Instructions++
		}

		if register, waiting := machine.AwaitingKey(); waiting {
			r.logger.Debug("Waiting for key", log.Int("register", register))
		}

		if machine.TickTimers() {
			r.frontend.Beep()
			result.Beeps++
		}

		if err := r.frontend.Render(machine.Display()); err != nil {
			return result, fmt.Errorf("rendering frame: %w", err)
		}
		result.Frames++

		if frameTick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("running program: %w", ctx.Err())
		case <-frameTick:
		}
	}

	return result, nil
}

func (r *Runner) applyInput(machine *vm.Machine) error {
	events, inputErr := r.frontend.Input()
	for _, event := range events {
		if err := machine.KeyPress(event.Key, event.Pressed); err != nil {
			return fmt.Errorf("applying key event: %w", err)
		}
	}
	if inputErr != nil {
		return fmt.Errorf("reading input: %w", inputErr)
	}
	return nil
}
