// Package ui renders a hotseat session in the terminal.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	pageBoard  = "board"
	pageResult = "result"

	buttonTryAgain = "Try Again"
	buttonClose    = "Close"

	cellWidth    = 4
	commandQueue = 32
	helpLine  = "1-9 play  arrows+Enter play  r restart  x/o choose mark  q quit"
)

type controller interface {
	SelectCell(ctx context.Context, index int) (entity.MatchResult, error)
	Restart(ctx context.Context)
	Replay(ctx context.Context)
	ChooseMark(ctx context.Context, mark entity.Mark) error
	Snapshot() entity.Session
}

type command struct {
	method string
	run    func(ctx context.Context, session controller) error
}

// Board shows one session. It follows the session through its events and only
// issues commands; the board it draws is its own copy. Commands run one at a time,
// in the order the keys were pressed.
type Board struct {
	ctx        context.Context
	logger     *slog.Logger
	app        *tview.Application
	controller controller
	commands   chan command

	mu     sync.Mutex
	view   entity.Session
	cursor cursor

	box    *tview.Box
	status *tview.TextView
	result *tview.Modal
	pages  *tview.Pages
}

func NewBoard(ctx context.Context, logger *slog.Logger, app *tview.Application) *Board {
	board := &Board{
		ctx:    ctx,
		logger: logger.With("component", "ui"),
		app:    app,
		box:    tview.NewBox(),
		status: tview.NewTextView(),
		result: tview.NewModal(),
		pages:  tview.NewPages(),

		commands: make(chan command, commandQueue),
	}

	board.box.SetBorder(true).SetTitle(" tic-tac-toe ")
	board.box.SetDrawFunc(board.draw)
	board.box.SetInputCapture(board.handleKey)

	board.status.SetBorder(true)
	board.status.SetBorderPadding(0, 0, 1, 1)
	board.status.SetTitle(" Status ")
	board.status.SetTitleAlign(tview.AlignLeft)

	board.result.AddButtons([]string{buttonTryAgain, buttonClose})
	board.result.SetDoneFunc(board.handleResult)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(board.status, 4, 0, false).
		AddItem(board.box, 0, 1, true)

	board.pages.AddPage(pageBoard, layout, true, true)
	board.pages.AddPage(pageResult, board.result, false, false)

	go board.processCommands()

	return board
}

// Attach binds the board to the session it shows and its commands.
func (that *Board) Attach(session controller) {
	snapshot := session.Snapshot()

	that.mu.Lock()
	that.controller = session
	that.view = snapshot
	that.cursor = cursor{rows: snapshot.Rows, cols: snapshot.Cols, row: snapshot.Rows / 2, col: snapshot.Cols / 2}
	that.mu.Unlock()

	that.refresh()
}

func (that *Board) Root() tview.Primitive {
	return that.pages
}

// Notify applies a session event and redraws. It must not be called from the UI goroutine.
func (that *Board) Notify(_ context.Context, event entity.Event) error {
	that.mu.Lock()
	that.view.Apply(event)
	that.mu.Unlock()

	that.app.QueueUpdateDraw(that.refresh)

	return nil
}

// View returns a copy of what the board currently shows.
func (that *Board) View() entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	view := that.view
	view.Board = append([]entity.Mark(nil), that.view.Board...)
	return view
}

func (that *Board) refresh() {
	view := that.View()

	that.status.SetText(fmt.Sprintf("%s    %s\n%s", view.TurnLabel(), view.StatusLabel(), helpLine))

	if view.IsFinished() {
		that.result.SetText(view.Result.Message())
		that.pages.ShowPage(pageResult)
		that.app.SetFocus(that.result)
		return
	}

	if name, _ := that.pages.GetFrontPage(); name == pageResult {
		that.pages.HidePage(pageResult)
		that.app.SetFocus(that.box)
	}
}

func (that *Board) handleResult(_ int, label string) {
	that.pages.HidePage(pageResult)
	that.app.SetFocus(that.box)

	if label == buttonTryAgain {
		that.run("Replay", func(ctx context.Context, session controller) error {
			session.Replay(ctx)
			return nil
		})
	}
}

func (that *Board) handleKey(event *tcell.EventKey) *tcell.EventKey {
	act := keyAction(event)

	switch act.kind {
	case actionNone:
		return event
	case actionQuit:
		that.app.Stop()
	case actionMove:
		that.mu.Lock()
		that.cursor.move(act.dRow, act.dCol)
		that.mu.Unlock()
	case actionSelect:
		that.mu.Lock()
		that.cursor.set(act.cell)
		that.mu.Unlock()
		that.selectCell(act.cell)
	case actionPlaySelected:
		that.mu.Lock()
		index := that.cursor.index()
		that.mu.Unlock()
		that.selectCell(index)
	case actionRestart:
		that.run("Restart", func(ctx context.Context, session controller) error {
			session.Restart(ctx)
			return nil
		})
	case actionChooseMark:
		that.run("ChooseMark", func(ctx context.Context, session controller) error {
			return session.ChooseMark(ctx, act.mark)
		})
	}

	return nil
}

func (that *Board) selectCell(index int) {
	that.run("SelectCell", func(ctx context.Context, session controller) error {
		_, err := session.SelectCell(ctx, index)
		return err
	})
}

// run queues a command for the command goroutine; the session answers through Notify.
// The UI goroutine never waits on a full queue.
func (that *Board) run(method string, run func(ctx context.Context, session controller) error) {
	select {
	case that.commands <- command{method: method, run: run}:
	default:
		that.logger.Warn("command queue full, dropping command", "method", method)
	}
}

func (that *Board) processCommands() {
	for {
		select {
		case <-that.ctx.Done():
			return
		case cmd := <-that.commands:
			that.mu.Lock()
			session := that.controller
			that.mu.Unlock()

			if session == nil {
				continue
			}

			if err := cmd.run(that.ctx, session); err != nil {
				that.logger.Debug("command rejected", "method", cmd.method, "error", err)
			}
		}
	}
}

func (that *Board) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	view := that.view
	if view.Rows == 0 || view.Cols == 0 {
		return x, y, width, height
	}

	boardW, boardH := view.Cols*cellWidth-1, view.Rows*2-1
	left := x + (width-boardW)/2
	top := y + (height-boardH)/2

	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for row := 0; row < view.Rows; row++ {
		for col := 0; col < view.Cols; col++ {
			index := row*view.Cols + col
			cx, cy := left+col*cellWidth, top+row*2

			if index < len(view.Board) {
				symbol, style := that.cellLook(view, index)
				screen.SetContent(cx, cy, ' ', nil, style)
				screen.SetContent(cx+1, cy, symbol, nil, style)
				screen.SetContent(cx+2, cy, ' ', nil, style)
			}

			if col < view.Cols-1 {
				screen.SetContent(cx+3, cy, tview.BoxDrawingsLightVertical, nil, lineStyle)
			}

			if row < view.Rows-1 {
				for i := 0; i < cellWidth-1; i++ {
					screen.SetContent(cx+i, cy+1, tview.BoxDrawingsLightHorizontal, nil, lineStyle)
				}
				if col < view.Cols-1 {
					screen.SetContent(cx+3, cy+1, tview.BoxDrawingsLightVerticalAndHorizontal, nil, lineStyle)
				}
			}
		}
	}

	return x, y, width, height
}

func (that *Board) cellLook(view entity.Session, index int) (rune, tcell.Style) {
	style := tcell.StyleDefault
	symbol := '·'

	switch view.Board[index] {
	case entity.X:
		symbol = 'X'
		style = style.Foreground(tcell.ColorRed).Bold(true)
	case entity.O:
		symbol = 'O'
		style = style.Foreground(tcell.ColorDodgerBlue).Bold(true)
	default:
		if index < 9 {
			symbol = rune('1' + index)
			style = style.Foreground(tcell.ColorDarkGray)
		}
	}

	if view.Result.Pattern.Includes(index) {
		style = style.Background(tcell.ColorDarkGreen)
	}

	if view.IsOngoing() && index == that.cursor.index() {
		style = style.Reverse(true)
	}

	return symbol, style
}
