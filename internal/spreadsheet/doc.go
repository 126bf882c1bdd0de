// Package spreadsheet 封装 Excel (.xlsx) 的读写。
//
// 读取侧把第一个工作表展开为按行排列的单元格文本网格，缺失的单元格表现为"不存在"而非错误；
// 写入侧提供带类型的行写入、加粗表头与按内容自动列宽。二进制编解码由 excelize 完成。
package spreadsheet
