// mysqlcli 一个一次性执行 SQL 的小工具，
// 用来验证驱动端到端的行为，顺便当使用示例
//
//	mysqlcli --dsn "root:root@tcp(127.0.0.1:3306)/demo" "SELECT * FROM t"
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/meoying/mysqldriver"
	logdriver "github.com/meoying/mysqldriver/internal/driver/log"
)

func main() {
	cfile := pflag.String("config", "", "yaml 配置文件路径")
	dsn := pflag.String("dsn", "", "连接串，例如 root:root@tcp(127.0.0.1:3306)/demo")
	timeout := pflag.Duration("timeout", 10*time.Second, "单条命令的超时")
	verbose := pflag.Bool("verbose", false, "打印协议层调试日志")
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	query := strings.TrimSpace(strings.Join(pflag.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, `用法: mysqlcli [--dsn DSN | --config FILE] "SQL 语句"`)
		pflag.PrintDefaults()
		os.Exit(2)
	}

	target, err := resolveDSN(*cfile, *dsn)
	if err != nil {
		panic(err)
	}

	if err := run(target, query, *timeout, *verbose); err != nil {
		logger.Error("执行失败", slog.Any("错误", err))
		os.Exit(1)
	}
}

func resolveDSN(cfile, dsn string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	if cfile == "" {
		return "", fmt.Errorf("--dsn 和 --config 至少要给一个")
	}
	viper.SetConfigType("yaml")
	viper.SetConfigFile(cfile)
	if err := viper.ReadInConfig(); err != nil {
		return "", fmt.Errorf("初始化读取配置文件失败 %w", err)
	}
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return "", fmt.Errorf("解析配置文件失败 %w", err)
	}
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	return mysqldriver.FormatDSN(&mysqldriver.Config{
		Addr:     cfg.Addr,
		User:     cfg.User,
		Password: cfg.Password,
		DBName:   cfg.DBName,
		Charset:  cfg.Charset,
		Timeout:  cfg.Timeout,
		Compress: cfg.Compress,
	}), nil
}

func run(dsn, query string, timeout time.Duration, verbose bool) (err error) {
	db, err := openDB(dsn, verbose)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if isExec(query) {
		res, err := db.ExecContext(ctx, query)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		insertID, _ := res.LastInsertId()
		if insertID > 0 {
			fmt.Printf("Query OK, %d rows affected, last insert id %d\n", affected, insertID)
		} else {
			fmt.Printf("Query OK, %d rows affected\n", affected)
		}
		return nil
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	// 多语句命令会带回多个结果集，挨个打印
	for {
		if err := printResultSet(rows); err != nil {
			return err
		}
		if !rows.NextResultSet() {
			break
		}
	}
	return rows.Err()
}

// openDB verbose 模式下换成带日志装饰器的连接器，
// 驱动层的每次调用都会打到 stderr
func openDB(dsn string, verbose bool) (*sql.DB, error) {
	if !verbose {
		return sql.Open(mysqldriver.DriverName, dsn)
	}
	connector, err := logdriver.NewConnector(&mysqldriver.Driver{}, dsn, logdriver.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

// isExec 判断该走 Exec 还是 Query。
// 只看第一个关键字，目的是决定打印行数统计还是数据表格
func isExec(query string) bool {
	fields := strings.Fields(strings.ToUpper(query))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "INSERT", "UPDATE", "DELETE", "REPLACE",
		"CREATE", "DROP", "ALTER", "TRUNCATE",
		"SET", "USE", "GRANT", "REVOKE":
		return true
	default:
		return false
	}
}

func printResultSet(rows *sql.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(cols)
	table.SetAutoWrapText(false)

	count := 0
	for rows.Next() {
		values := make([][]byte, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return err
		}
		table.Append(slice.Map(values, func(idx int, src []byte) string {
			if src == nil {
				return "NULL"
			}
			return string(src)
		}))
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	table.Render()
	fmt.Printf("%d rows in set\n", count)
	return nil
}
