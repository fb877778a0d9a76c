package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"grana/internal/common"
	"grana/internal/ingest"
)

// ingestCmd loads pre-parsed raw rows (semicolon-separated: date, line type,
// detail, amount, document number) and stores them as classified
// transactions. Statement-format parsing itself lives in an external
// collaborator; this command only consumes its output.
func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest pre-parsed statement rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := os.Open(args[0])
			if err != nil {
				return common.NewUserError("could not open input file", err)
			}
			defer func() { _ = file.Close() }()

			reader := csv.NewReader(file)
			reader.Comma = ';'
			reader.FieldsPerRecord = -1

			records, err := reader.ReadAll()
			if err != nil {
				return common.NewUserError("could not read input file", err)
			}

			rows := make([]ingest.RawRow, 0, len(records))
			for _, record := range records {
				row := ingest.RawRow{}
				if len(record) > 0 {
					row.Date = record[0]
				}
				if len(record) > 1 {
					row.LineType = record[1]
				}
				if len(record) > 2 {
					row.Detail = record[2]
				}
				if len(record) > 3 {
					row.Amount = record[3]
				}
				if len(record) > 4 {
					row.DocumentNumber = record[4]
				}
				rows = append(rows, row)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions := ingest.FromRows(ctx, rows, newClassifier(store), time.Now())
			if len(transactions) == 0 {
				fmt.Println("nothing to ingest")
				return nil
			}

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}
			snap.Transactions = append(snap.Transactions, transactions...)
			persistSnapshot(store, *snap)

			common.LogInfo("ingested transactions", common.Fields{"count": len(transactions)})
			fmt.Printf("ingested %d transactions\n", len(transactions))
			return nil
		},
	}
	return cmd
}
