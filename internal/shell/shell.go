// internal/shell/shell.go

// Package shell 提供互動式指令列：逐行讀取輸入，以 cobra 指令樹解析後
// 轉成 command.Command 執行，並在狀態改變後保存。
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mcgymmy/internal/command"
	"mcgymmy/internal/food"
	"mcgymmy/internal/model"
)

// Saver 在狀態改變後保存，通常是 (*app.App).Save。
type Saver func(ctx context.Context) error

// Shell 綁定一個 Model 與輸出。
type Shell struct {
	Model *model.Model
	Save  Saver
	Out   io.Writer

	// Today 回傳 add 未指定日期時使用的日期。
	Today func() string

	exit bool
}

// New 建立 Shell；save 可為 nil。
func New(m *model.Model, save Saver, out io.Writer) *Shell {
	return &Shell{
		Model: m,
		Save:  save,
		Out:   out,
		Today: func() string { return time.Now().Format(food.DateLayout) },
	}
}

// Run 讀取 in 直到 EOF 或 exit 指令。單行的錯誤只回報，不中斷迴圈。
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(s.Out, "> ")
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Exec(ctx, sc.Text()); err != nil {
			fmt.Fprintln(s.Out, "Error:", err)
		}
		if s.exit {
			return nil
		}
		fmt.Fprint(s.Out, "> ")
	}
	return sc.Err()
}

// Exec 執行單行指令。
func (s *Shell) Exec(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	root := s.commandTree(ctx)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// dispatch 執行指令、輸出訊息與目前清單，必要時保存。
func (s *Shell) dispatch(ctx context.Context, c command.Command) error {
	res, err := c.Execute(s.Model)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, res.Message)
	s.printView()
	if res.Mutated && s.Save != nil {
		if err := s.Save(ctx); err != nil {
			return fmt.Errorf("could not save data: %w", err)
		}
	}
	return nil
}

func (s *Shell) printView() {
	for i, f := range s.Model.FilteredView() {
		fmt.Fprintf(s.Out, "%d. %s\n", i+1, f)
	}
}

func (s *Shell) commandTree(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           "mcgymmy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(s.Out)
	root.SetErr(s.Out)
	root.CompletionOptions.DisableDefaultCmd = true

	run := func(c command.Command) error { return s.dispatch(ctx, c) }

	// add
	var (
		name                string
		protein, fat, carbs int
		tags                []string
		date                string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = s.Today()
			}
			f, err := food.New(name, protein, fat, carbs, tags, date)
			if err != nil {
				return err
			}
			return run(command.Add{Food: f})
		},
	}
	addFoodFlags(addCmd, &name, &protein, &fat, &carbs, &tags, &date)
	_ = addCmd.MarkFlagRequired("name")

	// edit
	var (
		eName                  string
		eProtein, eFat, eCarbs int
		eTags                  []string
		eDate                  string
	)
	editCmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the food at INDEX in the displayed list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			c := command.Edit{Index: idx}
			fl := cmd.Flags()
			if fl.Changed("name") {
				c.Name = &eName
			}
			if fl.Changed("protein") {
				c.Protein = &eProtein
			}
			if fl.Changed("fat") {
				c.Fat = &eFat
			}
			if fl.Changed("carbs") {
				c.Carbs = &eCarbs
			}
			if fl.Changed("tag") {
				c.Tags = &eTags
			}
			if fl.Changed("date") {
				c.Date = &eDate
			}
			return run(c)
		},
	}
	addFoodFlags(editCmd, &eName, &eProtein, &eFat, &eCarbs, &eTags, &eDate)

	deleteCmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the food at INDEX in the displayed list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return run(command.Delete{Index: idx})
		},
	}

	var fTag, fDate string
	findCmd := &cobra.Command{
		Use:   "find [KEYWORD...]",
		Short: "Show foods whose name contains any keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(command.Find{Keywords: args, Tag: fTag, Date: fDate})
		},
	}
	findCmd.Flags().StringVarP(&fTag, "tag", "t", "", "only foods with this tag")
	findCmd.Flags().StringVarP(&fDate, "date", "d", "", "only foods eaten on this date ("+food.DateLayout+")")

	simple := func(use, short string, c command.Command) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return run(c) },
		}
	}

	exitCmd := &cobra.Command{
		Use:     "exit",
		Aliases: []string{"quit"},
		Short:   "Save and leave the shell",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s.exit = true
			return nil
		},
	}

	root.AddCommand(
		addCmd, editCmd, deleteCmd, findCmd,
		simple("list", "Show all foods", command.List{}),
		simple("clear", "Delete every food in the displayed list", command.Clear{}),
		simple("undo", "Undo the last command", command.Undo{}),
		simple("redo", "Redo the last undone command", command.Redo{}),
		simple("macros", "Show macro totals of the displayed list", command.Macros{}),
		exitCmd,
	)
	return root
}

func addFoodFlags(cmd *cobra.Command, name *string, protein, fat, carbs *int, tags *[]string, date *string) {
	fl := cmd.Flags()
	fl.StringVarP(name, "name", "n", "", "food name")
	fl.IntVarP(protein, "protein", "p", 0, "protein in grams")
	fl.IntVarP(fat, "fat", "f", 0, "fat in grams")
	fl.IntVarP(carbs, "carbs", "c", 0, "carbohydrates in grams")
	fl.StringSliceVarP(tags, "tag", "t", nil, "tag (repeatable)")
	fl.StringVarP(date, "date", "d", "", "date eaten ("+food.DateLayout+")")
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrIndexOutOfRange, s)
	}
	return idx, nil
}

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs 以空白切分，支援單／雙引號包住含空白的參數。
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
